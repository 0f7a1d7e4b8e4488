package services

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"minicakes_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LandingContent is the copy and structure of the landing page
type LandingContent struct {
	Title    string
	Tagline  string
	Nav      []NavLink
	Hero     HeroContent
	Variants []models.Variant
	Sections []Section
	Signup   SignupContent
}

type NavLink struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

type HeroContent struct {
	Heading string
	// BodyHTML is rendered from markdown and sanitized
	BodyHTML string
	CTALabel string
}

type Section struct {
	ID       string
	Title    string
	BodyHTML string
}

type SignupContent struct {
	Heading     string `yaml:"heading"`
	Description string `yaml:"description"`
}

type landingFile struct {
	Title   string    `yaml:"title"`
	Tagline string    `yaml:"tagline"`
	Nav     []NavLink `yaml:"nav"`
	Hero    struct {
		Heading  string `yaml:"heading"`
		Body     string `yaml:"body"`
		CTALabel string `yaml:"cta_label"`
	} `yaml:"hero"`
	Variants []models.Variant `yaml:"variants"`
	Sections []struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"sections"`
	Signup SignupContent `yaml:"signup"`
}

var (
	markdown      = goldmark.New()
	contentPolicy = bluemonday.UGCPolicy()
)

// LoadLandingContent reads the YAML content file. A missing file yields the
// built-in copy so the page still renders.
func LoadLandingContent(path string) (*LandingContent, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Warn("Landing content file not found, using built-in copy", zap.String("path", path))
		return DefaultLandingContent(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read landing content: %w", err)
	}
	return ParseLandingContent(raw)
}

// ParseLandingContent decodes YAML content and renders its markdown fields
func ParseLandingContent(raw []byte) (*LandingContent, error) {
	var file landingFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse landing content: %w", err)
	}
	if len(file.Variants) == 0 {
		return nil, fmt.Errorf("landing content must define at least one variant")
	}

	seen := make(map[string]bool, len(file.Variants))
	for _, v := range file.Variants {
		if v.Key == "" || v.Symbol == "" {
			return nil, fmt.Errorf("variant %q needs a key and a symbol", v.Label)
		}
		if seen[v.Key] {
			return nil, fmt.Errorf("duplicate variant key %q", v.Key)
		}
		seen[v.Key] = true
	}

	heroHTML, err := renderMarkdown(file.Hero.Body)
	if err != nil {
		return nil, err
	}

	content := &LandingContent{
		Title:   file.Title,
		Tagline: file.Tagline,
		Nav:     file.Nav,
		Hero: HeroContent{
			Heading:  file.Hero.Heading,
			BodyHTML: heroHTML,
			CTALabel: file.Hero.CTALabel,
		},
		Variants: file.Variants,
		Signup:   file.Signup,
	}
	for _, s := range file.Sections {
		body, err := renderMarkdown(s.Body)
		if err != nil {
			return nil, err
		}
		content.Sections = append(content.Sections, Section{ID: s.ID, Title: s.Title, BodyHTML: body})
	}
	return content, nil
}

func renderMarkdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return contentPolicy.Sanitize(buf.String()), nil
}

// DefaultLandingContent is the copy used when no content file is present
func DefaultLandingContent() *LandingContent {
	return &LandingContent{
		Title:   "Mini-Cakes",
		Tagline: "Tiny cakes, big joy",
		Nav: []NavLink{
			{Label: "Cakes", Target: "showcase"},
			{Label: "Why Mini", Target: "features"},
			{Label: "Free E-book", Target: "signup"},
		},
		Hero: HeroContent{
			Heading:  "Bake bite-sized happiness",
			BodyHTML: "<p>Pick a favourite and grab our free recipe e-book.</p>",
			CTALabel: "Get the e-book",
		},
		Variants: []models.Variant{
			{Key: "cupcake", Label: "Cupcake", Symbol: "🧁"},
			{Key: "shortcake", Label: "Shortcake", Symbol: "🍰"},
			{Key: "birthday", Label: "Birthday", Symbol: "🎂"},
			{Key: "pie", Label: "Pie", Symbol: "🥧"},
		},
		Sections: []Section{
			{ID: "features", Title: "Why mini?", BodyHTML: "<p>Quick to bake, easy to share.</p>"},
		},
		Signup: SignupContent{
			Heading:     "Get your free Mini-Cakes e-book",
			Description: "Twenty recipes, straight to your inbox.",
		},
	}
}
