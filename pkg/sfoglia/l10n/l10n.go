// Package l10n supplies localized default labels for the navigation
// engine's semantic surfaces: the modal barrier's dismiss label and the
// back affordance. Applications that render their own chrome can ignore it;
// ModalRoute falls back to these defaults when no label is supplied.
package l10n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	msgBarrierDismiss = "BarrierDismiss"
	msgBack           = "Back"
)

var bundle = func() *i18n.Bundle {
	b := i18n.NewBundle(language.English)

	// Built-in translations; hosts extend the set through AddMessages.
	must(b.AddMessages(language.English,
		&i18n.Message{ID: msgBarrierDismiss, Other: "Dismiss"},
		&i18n.Message{ID: msgBack, Other: "Back"},
	))
	must(b.AddMessages(language.Italian,
		&i18n.Message{ID: msgBarrierDismiss, Other: "Chiudi"},
		&i18n.Message{ID: msgBack, Other: "Indietro"},
	))
	return b
}()

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Labels holds the resolved semantic labels for one language preference.
type Labels struct {
	// BarrierDismiss is the accessibility label for a dismissible modal
	// barrier.
	BarrierDismiss string
	// Back is the label for the back affordance.
	Back string
}

// For resolves labels for the given language preferences, best match first.
// With no arguments it returns the English defaults.
func For(langs ...string) Labels {
	loc := i18n.NewLocalizer(bundle, langs...)
	return Labels{
		BarrierDismiss: localize(loc, msgBarrierDismiss, "Dismiss"),
		Back:           localize(loc, msgBack, "Back"),
	}
}

func localize(loc *i18n.Localizer, id, fallback string) string {
	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return fallback
	}
	return s
}

// AddMessages registers host-supplied translations for a language.
func AddMessages(tag language.Tag, messages ...*i18n.Message) error {
	return bundle.AddMessages(tag, messages...)
}
