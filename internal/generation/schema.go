package generation

import "github.com/sashabaranov/go-openai/jsonschema"

func str() jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.String}
}

func strList() jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}}
}

func object(props map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}
}

// outlineShape is the exact result shape of the outline operation.
var outlineShape = object(map[string]jsonschema.Definition{
	"outline": str(),
}, "outline")

// articleShape is the exact result shape of the article operation.
var articleShape = object(map[string]jsonschema.Definition{
	"article": object(map[string]jsonschema.Definition{
		"articleTitle":       str(),
		"articleHtmlContent": str(),
		"secondaryKeywords":  strList(),
	}, "articleTitle", "articleHtmlContent", "secondaryKeywords"),
	"metadata": object(map[string]jsonschema.Definition{
		"metaTitle":         str(),
		"metaDescription":   str(),
		"socialTitle":       str(),
		"socialDescription": str(),
	}, "metaTitle", "metaDescription", "socialTitle", "socialDescription"),
	"gate": object(map[string]jsonschema.Definition{
		"blocked":                {Type: jsonschema.Boolean},
		"reasons":                strList(),
		"claimsNeedingCitations": strList(),
	}, "blocked", "reasons", "claimsNeedingCitations"),
}, "article", "metadata", "gate")
