package generator

import (
	"strings"
	"testing"

	"github.com/mcncl/jsonhtml/internal/config"
	"github.com/mcncl/jsonhtml/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(root *models.Node) models.Document {
	return models.Document{Root: root, RootIsObject: root.IsObject()}
}

func TestGenerateHTML_EndToEndExample(t *testing.T) {
	root := models.NewObject(
		models.M("doctype", models.NewString("html")),
		models.M("language", models.NewString("en")),
		models.M("head", models.NewObject(models.M("title", models.NewString("Hi")))),
		models.M("body", models.NewObject(models.M("h1", models.NewString("Hello")))),
	)

	result := NewGenerator().GenerateHTML(doc(root))

	expected := `<!DOCTYPE html>
<html lang="en">
    <head>
        <title>Hi</title>
    </head>
    <body>
        <h1>Hello</h1>
    </body>
</html>
`
	assert.Equal(t, expected, result)
}

func TestGenerateHTML_Doctype(t *testing.T) {
	tests := []struct {
		name        string
		doctype     *models.Node
		wantDoctype bool
	}{
		{"html", models.NewString("html"), true},
		{"xhtml", models.NewString("xhtml"), false},
		{"upper case", models.NewString("HTML"), false},
		{"null", models.NewNull(), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := models.NewObject()
			if tt.doctype != nil {
				root.Members = append(root.Members, models.M("doctype", tt.doctype))
			}
			result := NewGenerator().GenerateHTML(doc(root))
			firstLine := strings.SplitN(result, "\n", 2)[0]
			if tt.wantDoctype {
				assert.Equal(t, "<!DOCTYPE html>", firstLine)
			} else {
				assert.NotContains(t, result, "<!DOCTYPE")
				assert.Equal(t, `<html lang="en">`, firstLine)
			}
		})
	}
}

func TestGenerateHTML_Language(t *testing.T) {
	tests := []struct {
		name     string
		language *models.Node
		expected string
	}{
		{"absent", nil, `<html lang="en">`},
		{"french", models.NewString("fr"), `<html lang="fr">`},
		{"null", models.NewNull(), `<html lang="en">`},
		{"number", models.NewNumber("42"), `<html lang="42">`},
		{"quoted", models.NewString(`x"y`), `<html lang="x&quot;y">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := models.NewObject()
			if tt.language != nil {
				root.Members = append(root.Members, models.M("language", tt.language))
			}
			result := NewGenerator().GenerateHTML(doc(root))
			assert.Contains(t, result, tt.expected+"\n")
		})
	}
}

func TestGenerateHTML_DefaultLanguageFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Language = "sl"

	result := NewGeneratorWithConfig(cfg).GenerateHTML(doc(models.NewObject()))
	assert.Equal(t, "<html lang=\"sl\">\n</html>\n", result)
}

func TestGenerateHTML_NonObjectRoot(t *testing.T) {
	roots := map[string]*models.Node{
		"array":  models.NewArray(models.NewString("a")),
		"string": models.NewString("body"),
		"null":   models.NewNull(),
		"nil":    nil,
	}

	for name, root := range roots {
		t.Run(name, func(t *testing.T) {
			result := NewGenerator().GenerateHTML(models.Document{Root: root})
			assert.Equal(t, "<html lang=\"en\">\n</html>\n", result)
		})
	}
}

func TestGenerateHTML_BlockOrder(t *testing.T) {
	// body before head in the input still renders head first
	root := models.NewObject(
		models.M("body", models.NewObject()),
		models.M("head", models.NewObject()),
		models.M("doctype", models.NewString("html")),
	)

	result := NewGenerator().GenerateHTML(doc(root))
	expected := `<!DOCTYPE html>
<html lang="en">
    <head>
    </head>
    <body>
    </body>
</html>
`
	assert.Equal(t, expected, result)
}

func TestGenerateHTML_WrongShapeSections(t *testing.T) {
	root := models.NewObject(
		models.M("head", models.NewString("nope")),
		models.M("body", models.NewArray(models.NewString("x"))),
	)

	result := NewGenerator().GenerateHTML(doc(root))
	expected := `<html lang="en">
    <head>
    </head>
    <body>
    </body>
</html>
`
	assert.Equal(t, expected, result)
}

func TestGenerateHTML_Idempotent(t *testing.T) {
	root := models.NewObject(
		models.M("doctype", models.NewString("html")),
		models.M("body", models.NewObject(
			models.M("p", models.NewArray(models.NewString("a"), models.NewString("b"))),
		)),
	)

	g := NewGenerator()
	first := g.GenerateHTML(doc(root))
	second := g.GenerateHTML(doc(root))
	assert.Equal(t, first, second)
}

func TestRenderHead(t *testing.T) {
	tests := []struct {
		name     string
		head     *models.Node
		expected string
	}{
		{
			name: "meta charset and named",
			head: models.NewObject(models.M("meta", models.NewObject(
				models.M("charset", models.NewString("UTF-8")),
				models.M("description", models.NewString("A page")),
			))),
			expected: "" +
				"        <meta charset=\"UTF-8\">\n" +
				"        <meta name=\"description\" content=\"A page\">\n",
		},
		{
			name: "link keeps attribute order",
			head: models.NewObject(models.M("link", models.NewArray(
				models.NewObject(
					models.M("rel", models.NewString("icon")),
					models.M("type", models.NewString("image/png")),
					models.M("href", models.NewString("/favicon.png")),
				),
			))),
			expected: "        <link rel=\"icon\" type=\"image/png\" href=\"/favicon.png\">\n",
		},
		{
			name: "link skips non-object entries",
			head: models.NewObject(models.M("link", models.NewArray(
				models.NewString("style.css"),
				models.NewNull(),
				models.NewObject(models.M("href", models.NewString("a.css"))),
			))),
			expected: "        <link href=\"a.css\">\n",
		},
		{
			name:     "title is escaped",
			head:     models.NewObject(models.M("title", models.NewString("Fish & <Chips>"))),
			expected: "        <title>Fish &amp; &lt;Chips&gt;</title>\n",
		},
		{
			name:     "null title is empty",
			head:     models.NewObject(models.M("title", models.NewNull())),
			expected: "        <title></title>\n",
		},
		{
			name: "keys render in input order",
			head: models.NewObject(
				models.M("title", models.NewString("T")),
				models.M("meta", models.NewObject(models.M("author", models.NewString("me")))),
			),
			expected: "" +
				"        <title>T</title>\n" +
				"        <meta name=\"author\" content=\"me\">\n",
		},
		{
			name: "unrecognized keys are skipped",
			head: models.NewObject(
				models.M("script", models.NewString("alert(1)")),
				models.M("style", models.NewObject()),
			),
			expected: "",
		},
		{
			name:     "meta that is not an object",
			head:     models.NewObject(models.M("meta", models.NewString("not-an-object"))),
			expected: "",
		},
		{
			name:     "link that is not an array",
			head:     models.NewObject(models.M("link", models.NewObject(models.M("href", models.NewString("x"))))),
			expected: "",
		},
		{
			name:     "head that is not an object",
			head:     models.NewNumber("1"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewGenerator().RenderHead(tt.head, 2))
		})
	}
}

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name     string
		body     *models.Node
		expected string
	}{
		{
			name:     "empty",
			body:     models.NewObject(),
			expected: "    <body>\n    </body>\n",
		},
		{
			name: "attributes with style in place",
			body: models.NewObject(
				models.M("attributes", models.NewObject(
					models.M("id", models.NewString("top")),
					models.M("style", models.NewObject(
						models.M("color", models.NewString("red")),
						models.M("margin", models.NewString("0")),
					)),
					models.M("class", models.NewString("page")),
				)),
				models.M("p", models.NewString("text")),
			),
			expected: "" +
				"    <body id=\"top\" style=\"color:red;margin:0\" class=\"page\">\n" +
				"        <p>text</p>\n" +
				"    </body>\n",
		},
		{
			name: "attributes after children are still excluded",
			body: models.NewObject(
				models.M("h1", models.NewString("Title")),
				models.M("attributes", models.NewObject(models.M("lang", models.NewString("de")))),
			),
			expected: "" +
				"    <body lang=\"de\">\n" +
				"        <h1>Title</h1>\n" +
				"    </body>\n",
		},
		{
			name: "empty attributes object",
			body: models.NewObject(models.M("attributes", models.NewObject())),
			expected: "    <body>\n    </body>\n",
		},
		{
			name: "attributes that is not an object",
			body: models.NewObject(
				models.M("attributes", models.NewString("class=x")),
				models.M("p", models.NewString("a")),
			),
			expected: "" +
				"    <body>\n" +
				"        <p>a</p>\n" +
				"    </body>\n",
		},
		{
			name: "style that is not an object",
			body: models.NewObject(models.M("attributes", models.NewObject(
				models.M("style", models.NewString("color:red")),
				models.M("id", models.NewString("x")),
			))),
			expected: "    <body id=\"x\">\n    </body>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewGenerator().RenderBody(tt.body, 1))
		})
	}
}

func TestRenderBody_DoesNotMutateInput(t *testing.T) {
	body := models.NewObject(
		models.M("attributes", models.NewObject(models.M("id", models.NewString("x")))),
		models.M("p", models.NewString("a")),
	)

	_ = NewGenerator().RenderBody(body, 1)
	require.Len(t, body.Members, 2)
	assert.Equal(t, "attributes", body.Members[0].Key)
}

func TestRenderElement(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		value    *models.Node
		expected string
	}{
		{
			name:     "string",
			tag:      "h1",
			value:    models.NewString("Hello"),
			expected: "<h1>Hello</h1>\n",
		},
		{
			name:     "number",
			tag:      "span",
			value:    models.NewNumber("3.50"),
			expected: "<span>3.50</span>\n",
		},
		{
			name:     "bool",
			tag:      "b",
			value:    models.NewBool(false),
			expected: "<b>false</b>\n",
		},
		{
			name:     "null",
			tag:      "i",
			value:    models.NewNull(),
			expected: "<i></i>\n",
		},
		{
			name:     "escaping",
			tag:      "p",
			value:    models.NewString(`<b>&"'`),
			expected: "<p>&lt;b&gt;&amp;&quot;&#39;</p>\n",
		},
		{
			name:  "array repeats the tag",
			tag:   "p",
			value: models.NewArray(models.NewString("a"), models.NewString("b")),
			expected: "" +
				"<p>a</p>\n" +
				"<p>b</p>\n",
		},
		{
			name:     "empty array renders nothing",
			tag:      "li",
			value:    models.NewArray(),
			expected: "",
		},
		{
			name:  "nested arrays flatten",
			tag:   "li",
			value: models.NewArray(models.NewString("1"), models.NewArray(models.NewString("2"), models.NewString("3"))),
			expected: "" +
				"<li>1</li>\n" +
				"<li>2</li>\n" +
				"<li>3</li>\n",
		},
		{
			name: "object nests children",
			tag:  "ul",
			value: models.NewObject(
				models.M("attributes", models.NewObject(models.M("class", models.NewString("menu")))),
				models.M("li", models.NewArray(models.NewString("one"), models.NewString("two"))),
			),
			expected: "" +
				"<ul class=\"menu\">\n" +
				"    <li>one</li>\n" +
				"    <li>two</li>\n" +
				"</ul>\n",
		},
		{
			name: "array of objects",
			tag:  "section",
			value: models.NewArray(
				models.NewObject(models.M("h2", models.NewString("A"))),
				models.NewObject(
					models.M("attributes", models.NewObject(models.M("id", models.NewString("b")))),
					models.M("h2", models.NewString("B")),
				),
			),
			expected: "" +
				"<section>\n" +
				"    <h2>A</h2>\n" +
				"</section>\n" +
				"<section id=\"b\">\n" +
				"    <h2>B</h2>\n" +
				"</section>\n",
		},
		{
			name: "style on nested element",
			tag:  "div",
			value: models.NewObject(models.M("attributes", models.NewObject(
				models.M("style", models.NewObject(
					models.M("color", models.NewString("red")),
					models.M("margin", models.NewString("0")),
				)),
			))),
			expected: "" +
				"<div style=\"color:red;margin:0\">\n" +
				"</div>\n",
		},
		{
			name:     "empty object",
			tag:      "code",
			value:    models.NewObject(),
			expected: "<code>\n</code>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewGenerator().RenderElement(tt.tag, tt.value, 0))
		})
	}
}

func TestRenderElement_IndentsByLevel(t *testing.T) {
	value := models.NewObject(models.M("b", models.NewObject(models.M("c", models.NewString("x")))))

	result := NewGenerator().RenderElement("a", value, 2)
	expected := "" +
		"        <a>\n" +
		"            <b>\n" +
		"                <c>x</c>\n" +
		"            </b>\n" +
		"        </a>\n"
	assert.Equal(t, expected, result)
}

func TestRenderElement_AttributeValues(t *testing.T) {
	value := models.NewObject(models.M("attributes", models.NewObject(
		models.M("title", models.NewString(`say "hi" & go`)),
		models.M("data-count", models.NewNumber("3")),
		models.M("hidden", models.NewBool(true)),
		models.M("data-empty", models.NewNull()),
	)))

	result := NewGenerator().RenderElement("div", value, 0)
	assert.Equal(t,
		"<div title=\"say &quot;hi&quot; &amp; go\" data-count=\"3\" hidden=\"true\" data-empty=\"\">\n</div>\n",
		result)

	cfg := config.NewConfig()
	cfg.EscapeAttributes = false
	result = NewGeneratorWithConfig(cfg).RenderElement("div", value, 0)
	assert.Contains(t, result, `title="say "hi" & go"`)
}

func TestRenderHead_MetaNameIsAnAttributeValue(t *testing.T) {
	head := models.NewObject(models.M("meta", models.NewObject(
		models.M(`og"title`, models.NewString("x")),
	)))

	// The meta key lands inside name="..." and is escaped like any value
	assert.Equal(t, "<meta name=\"og&quot;title\" content=\"x\">\n", NewGenerator().RenderHead(head, 0))

	cfg := config.NewConfig()
	cfg.EscapeAttributes = false
	assert.Equal(t, "<meta name=\"og\"title\" content=\"x\">\n", NewGeneratorWithConfig(cfg).RenderHead(head, 0))

	// Attribute names are written as given
	link := models.NewObject(models.M("link", models.NewArray(models.NewObject(
		models.M("data-x", models.NewString("1")),
	))))
	assert.Equal(t, "<link data-x=\"1\">\n", NewGenerator().RenderHead(link, 0))
}

func TestGenerator_ConfigOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.IndentWidth = 2
	cfg.Newline = config.NewlineCRLF
	cfg.Styles.KebabCaseProperties = true

	value := models.NewObject(
		models.M("attributes", models.NewObject(models.M("style", models.NewObject(
			models.M("backgroundColor", models.NewString("blue")),
			models.M("fontSize", models.NewString("12px")),
		)))),
		models.M("span", models.NewString("x")),
	)

	result := NewGeneratorWithConfig(cfg).RenderElement("div", value, 1)
	expected := "" +
		"  <div style=\"background-color:blue;font-size:12px\">\r\n" +
		"    <span>x</span>\r\n" +
		"  </div>\r\n"
	assert.Equal(t, expected, result)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain", "plain"},
		{`<b>&"'`, "&lt;b&gt;&amp;&quot;&#39;"},
		{"&amp;", "&amp;amp;"},
		{"čšž ©", "čšž ©"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Escape(tt.input), "Escape(%q)", tt.input)
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", Indent(0, 4))
	assert.Equal(t, "    ", Indent(1, 4))
	assert.Equal(t, "            ", Indent(3, 4))
	assert.Equal(t, "", Indent(2, 0))
	assert.Equal(t, "", Indent(-1, 4))
}
