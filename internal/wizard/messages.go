package wizard

import "github.com/MKhiriev/go-site-forms/internal/locale"

type message struct {
	en string
	hy string
}

func (m message) in(l locale.Locale) string {
	return locale.Resolve(m.en, m.hy, l)
}

var (
	msgRequired = message{
		en: "This field is required",
		hy: "Այս դաշտը պարտադիր է",
	}
	msgSubmitFailed = message{
		en: "Could not submit the form. Please try again.",
		hy: "Չհաջողվեց ուղարկել ձևը։ Խնդրում ենք կրկին փորձել։",
	}
)
