package page

import (
	"minicakes_app_go/services"
)

// Element ids and classes shared by the controllers and the templates
const (
	HeaderID      = "header"
	MainDisplayID = "mainCake"
	ShowcaseID    = "showcase"
	SignupID      = "signup"
	FormID        = "signup-form"
	FirstNameID   = services.FieldFirstName
	EmailID       = services.FieldEmail
	SubmitID      = "submitBtn"
	MessageID     = "message"

	VariantClass = "variant-item"
	RevealClass  = "fade-in-up"
	NavClass     = "nav-link"

	ActiveClass   = "active"
	ScrolledClass = "scrolled"
	VisibleClass  = "visible"
)

// VariantElementID is the id of the showcase item for a variant key
func VariantElementID(key string) string {
	return "variant-" + key
}

// BuildLandingDocument lays out the landing page from its content
func BuildLandingDocument(content *services.LandingContent, lang string) *Document {
	doc := NewDocument(content.Title, lang)

	header := doc.Append(NewElement("header", HeaderID, "site-header"))
	header.Text = content.Title
	for _, link := range content.Nav {
		a := doc.Append(NewElement("a", "nav-"+link.Target, NavClass))
		a.Attrs["href"] = "#" + link.Target
		a.Text = link.Label
	}

	hero := doc.Append(NewElement("section", "hero", "hero"))
	hero.Text = content.Hero.Heading
	hero.HTML = content.Hero.BodyHTML
	cta := doc.Append(NewElement("a", "hero-cta", "btn", "btn-primary"))
	cta.Attrs["href"] = "#" + SignupID
	cta.Text = content.Hero.CTALabel

	doc.Append(NewElement("section", ShowcaseID, "showcase", RevealClass))
	display := doc.Append(NewElement("div", MainDisplayID, "main-cake"))
	if len(content.Variants) > 0 {
		display.Text = content.Variants[0].Symbol
	}
	for _, v := range content.Variants {
		item := doc.Append(NewElement("button", VariantElementID(v.Key), VariantClass))
		item.Text = v.Label
		item.SetData("cake", v.Symbol)
		item.SetData("key", v.Key)
	}

	for _, s := range content.Sections {
		section := doc.Append(NewElement("section", s.ID, "content-section", RevealClass))
		section.Text = s.Title
		section.HTML = s.BodyHTML
	}

	signup := doc.Append(NewElement("section", SignupID, "signup", RevealClass))
	signup.Text = content.Signup.Heading
	signup.Attrs["data-description"] = content.Signup.Description
	doc.Append(NewElement("form", FormID, "signup-form"))
	doc.Append(NewElement("input", FirstNameID, "form-input")).Attrs["type"] = "text"
	doc.Append(NewElement("input", EmailID, "form-input")).Attrs["type"] = "email"
	doc.Append(NewElement("button", SubmitID, "btn", "btn-primary")).Attrs["type"] = "submit"
	message := doc.Append(NewElement("div", MessageID, "message"))
	message.Style["display"] = "none"

	return doc
}
