package domain

import (
	"errors"
	"strings"
)

// DefaultLanguage is applied when a request omits the operating language.
const DefaultLanguage = "Arabic"

// ErrTopicRequired is returned for outline requests without a topic.
var ErrTopicRequired = errors.New("topic is required")

// OutlineRequest asks the generation backend for an article outline.
type OutlineRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language,omitempty"`
}

// Normalize trims fields and applies the default language.
func (r OutlineRequest) Normalize() OutlineRequest {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Language = strings.TrimSpace(r.Language)
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	return r
}

// Validate reports client-input errors.
func (r OutlineRequest) Validate() error {
	if r.Topic == "" {
		return ErrTopicRequired
	}
	return nil
}

// OutlineResponse carries the generated outline text.
type OutlineResponse struct {
	Outline string `json:"outline"`
}

// ArticleRequest is the caller-owned input of the article gate.
// Topic, PrimaryKeyword, Outline and Sources are required; the rest is optional.
type ArticleRequest struct {
	Topic           string   `json:"topic"`
	PrimaryKeyword  string   `json:"primaryKeyword"`
	Language        string   `json:"language,omitempty"`
	Outline         string   `json:"outline"`
	IntroStyle      string   `json:"introStyle,omitempty"`
	ConclusionStyle string   `json:"conclusionStyle,omitempty"`
	Sources         []string `json:"sources"`
	InternalLinks   []string `json:"internalLinks,omitempty"`
}

// Normalize returns a copy with trimmed strings, default language and non-nil slices.
func (r ArticleRequest) Normalize() ArticleRequest {
	r.Topic = strings.TrimSpace(r.Topic)
	r.PrimaryKeyword = strings.TrimSpace(r.PrimaryKeyword)
	r.Language = strings.TrimSpace(r.Language)
	r.Outline = strings.TrimSpace(r.Outline)
	r.IntroStyle = strings.TrimSpace(r.IntroStyle)
	r.ConclusionStyle = strings.TrimSpace(r.ConclusionStyle)
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	r.Sources = trimAll(r.Sources)
	r.InternalLinks = trimAll(r.InternalLinks)
	return r
}

// MissingFields lists required fields that are empty, in declaration order.
func (r ArticleRequest) MissingFields() []string {
	var missing []string
	if r.Topic == "" {
		missing = append(missing, "topic")
	}
	if r.PrimaryKeyword == "" {
		missing = append(missing, "primaryKeyword")
	}
	if r.Outline == "" {
		missing = append(missing, "outline")
	}
	return missing
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// GeneratedArticle is the article body produced by the generation backend.
type GeneratedArticle struct {
	ArticleTitle       string   `json:"articleTitle"`
	ArticleHTMLContent string   `json:"articleHtmlContent"`
	SecondaryKeywords  []string `json:"secondaryKeywords"`
}

// Metadata is passed through the gate unmodified.
type Metadata struct {
	MetaTitle         string `json:"metaTitle"`
	MetaDescription   string `json:"metaDescription"`
	SocialTitle       string `json:"socialTitle"`
	SocialDescription string `json:"socialDescription"`
}

// GenerationResult is the conforming object returned by the generation backend.
type GenerationResult struct {
	Article  GeneratedArticle `json:"article"`
	Metadata Metadata         `json:"metadata"`
	Gate     GateVerdict      `json:"gate"`
}

// ArticleResponse is returned to the caller. Gate is the authoritative publish signal:
// callers must not publish when Gate.Blocked is true.
type ArticleResponse struct {
	Article  GeneratedArticle `json:"article"`
	Metadata Metadata         `json:"metadata"`
	Gate     GateVerdict      `json:"gate"`
}

// EmptyArticle returns a zero article with a non-nil keyword slice so it encodes as [].
func EmptyArticle() GeneratedArticle {
	return GeneratedArticle{SecondaryKeywords: []string{}}
}
