package parser

// tagID is a canonical integer for every tag name the tree constructor
// has to branch on. Comparing tagIDs is a single int compare instead of
// a string compare, which matters because most insertion-mode handlers
// do one of these per token. unknownTagID is returned for any tag name
// outside this set; callers that need to distinguish between two unknown
// tags still have to fall back to comparing TagName directly.
type tagID uint

const (
	unknownTagID tagID = iota

	aTagID
	addressTagID
	appletTagID
	areaTagID
	articleTagID
	asideTagID
	bTagID
	baseTagID
	bigTagID
	blockquoteTagID
	bodyTagID
	brTagID
	buttonTagID
	captionTagID
	centerTagID
	codeTagID
	colTagID
	colgroupTagID
	ddTagID
	detailsTagID
	dialogTagID
	dirTagID
	divTagID
	dlTagID
	dtTagID
	emTagID
	embedTagID
	fieldsetTagID
	figcaptionTagID
	figureTagID
	fontTagID
	footerTagID
	formTagID
	frameTagID
	framesetTagID
	h1TagID
	h2TagID
	h3TagID
	h4TagID
	h5TagID
	h6TagID
	headTagID
	headerTagID
	hgroupTagID
	hrTagID
	htmlTagID
	iTagID
	iframeTagID
	imageTagID
	imgTagID
	inputTagID
	keygenTagID
	liTagID
	linkTagID
	listingTagID
	mainTagID
	marqueeTagID
	menuTagID
	metaTagID
	navTagID
	nobrTagID
	noembedTagID
	noframesTagID
	noscriptTagID
	objectTagID
	olTagID
	optgroupTagID
	optionTagID
	pTagID
	paramTagID
	plaintextTagID
	preTagID
	rbTagID
	rpTagID
	rtTagID
	rtcTagID
	rubyTagID
	sTagID
	scriptTagID
	sectionTagID
	selectTagID
	smallTagID
	sourceTagID
	spanTagID
	strikeTagID
	strongTagID
	styleTagID
	summaryTagID
	tableTagID
	tbodyTagID
	tdTagID
	templateTagID
	textareaTagID
	tfootTagID
	thTagID
	theadTagID
	titleTagID
	trTagID
	trackTagID
	ttTagID
	uTagID
	ulTagID
	varTagID
	wbrTagID
	xmpTagID

	// MathML and SVG tags the foreign-content and integration-point
	// logic needs to recognize by name.
	miTagID
	moTagID
	mnTagID
	msTagID
	mtextTagID
	annotationXMLTagID
	svgTagID
	foreignObjectTagID
	descTagID
	svgTitleTagID
)

var tagNameToID = map[string]tagID{
	"a":              aTagID,
	"address":        addressTagID,
	"applet":         appletTagID,
	"area":           areaTagID,
	"article":        articleTagID,
	"aside":          asideTagID,
	"b":              bTagID,
	"base":           baseTagID,
	"big":            bigTagID,
	"blockquote":     blockquoteTagID,
	"body":           bodyTagID,
	"br":             brTagID,
	"button":         buttonTagID,
	"caption":        captionTagID,
	"center":         centerTagID,
	"code":           codeTagID,
	"col":            colTagID,
	"colgroup":       colgroupTagID,
	"dd":             ddTagID,
	"details":        detailsTagID,
	"dialog":         dialogTagID,
	"dir":            dirTagID,
	"div":            divTagID,
	"dl":             dlTagID,
	"dt":             dtTagID,
	"em":             emTagID,
	"embed":          embedTagID,
	"fieldset":       fieldsetTagID,
	"figcaption":     figcaptionTagID,
	"figure":         figureTagID,
	"font":           fontTagID,
	"footer":         footerTagID,
	"form":           formTagID,
	"frame":          frameTagID,
	"frameset":       framesetTagID,
	"h1":             h1TagID,
	"h2":             h2TagID,
	"h3":             h3TagID,
	"h4":             h4TagID,
	"h5":             h5TagID,
	"h6":             h6TagID,
	"head":           headTagID,
	"header":         headerTagID,
	"hgroup":         hgroupTagID,
	"hr":             hrTagID,
	"html":           htmlTagID,
	"i":              iTagID,
	"iframe":         iframeTagID,
	"image":          imageTagID,
	"img":            imgTagID,
	"input":          inputTagID,
	"keygen":         keygenTagID,
	"li":             liTagID,
	"link":           linkTagID,
	"listing":        listingTagID,
	"main":           mainTagID,
	"marquee":        marqueeTagID,
	"menu":           menuTagID,
	"meta":           metaTagID,
	"nav":            navTagID,
	"nobr":           nobrTagID,
	"noembed":        noembedTagID,
	"noframes":       noframesTagID,
	"noscript":       noscriptTagID,
	"object":         objectTagID,
	"ol":             olTagID,
	"optgroup":       optgroupTagID,
	"option":         optionTagID,
	"p":              pTagID,
	"param":          paramTagID,
	"plaintext":      plaintextTagID,
	"pre":            preTagID,
	"rb":             rbTagID,
	"rp":             rpTagID,
	"rt":             rtTagID,
	"rtc":            rtcTagID,
	"ruby":           rubyTagID,
	"s":              sTagID,
	"script":         scriptTagID,
	"section":        sectionTagID,
	"select":         selectTagID,
	"small":          smallTagID,
	"source":         sourceTagID,
	"span":           spanTagID,
	"strike":         strikeTagID,
	"strong":         strongTagID,
	"style":          styleTagID,
	"summary":        summaryTagID,
	"table":          tableTagID,
	"tbody":          tbodyTagID,
	"td":             tdTagID,
	"template":       templateTagID,
	"textarea":       textareaTagID,
	"tfoot":          tfootTagID,
	"th":             thTagID,
	"thead":          theadTagID,
	"title":          titleTagID,
	"tr":             trTagID,
	"track":          trackTagID,
	"tt":             ttTagID,
	"u":              uTagID,
	"ul":             ulTagID,
	"var":            varTagID,
	"wbr":            wbrTagID,
	"xmp":            xmpTagID,
	"mi":             miTagID,
	"mo":             moTagID,
	"mn":             mnTagID,
	"ms":             msTagID,
	"mtext":          mtextTagID,
	"annotation-xml": annotationXMLTagID,
	"svg":            svgTagID,
	"foreignObject":  foreignObjectTagID,
	"desc":           descTagID,
}

// lookupTagID resolves a lowercase tag name to its canonical ID, or
// unknownTagID if the tag isn't one the tree constructor branches on by
// name. "title" is ambiguous between HTML and SVG; callers in foreign
// content compare TagName directly when that distinction matters.
func lookupTagID(name string) tagID {
	if id, ok := tagNameToID[name]; ok {
		return id
	}
	return unknownTagID
}
