package service

import "github.com/MKhiriev/go-site-forms/models"

// contactForm is a valid one-step form with a required e-mail field.
func contactForm() models.Form {
	return models.Form{
		ID:      7,
		PageKey: "contact",
		Version: 3,
		Steps: []models.FormStep{{
			ID:      "s1",
			Title:   "Contact",
			TitleHy: "Կոնտակտ",
			Fields: []models.FormField{{
				ID:            "f1",
				Type:          models.FieldInput,
				Label:         "Email",
				LabelHy:       "Էլ․փոստ",
				Placeholder:   "you@example.com",
				PlaceholderHy: "you@example.com",
				Required:      true,
			}},
		}},
	}
}
