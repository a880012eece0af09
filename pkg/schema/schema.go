package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

var (
	TokenClassificationSchema = generateSchema[TokenClassification]()
	EmotionDistributionSchema = generateSchema[EmotionDistribution]()
	DependencyParseSchema     = generateSchema[DependencyParse]()
)

// TokenClassificationFormat constrains a completion to the NER payload.
func TokenClassificationFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("token_classification", "Scored named-entity tokens found in a passage", TokenClassificationSchema)
}

// EmotionDistributionFormat constrains a completion to the emotion payload.
func EmotionDistributionFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("emotion_distribution", "Full emotion label distribution for a passage", EmotionDistributionSchema)
}

// DependencyParseFormat constrains a completion to the parse payload.
func DependencyParseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("dependency_parse", "Sentence-segmented dependency parse of a passage", DependencyParseSchema)
}

func responseFormat(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}
