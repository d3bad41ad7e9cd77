// internal/render/localize.go
package render

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/tamzrod/chargeflow/internal/classify"
)

var supported = []language.Tag{language.English, language.Persian}

var persian = map[string]string{
	"Not charging":     "شارژ نمی‌شود",
	"Trickle":          "قطره‌ای",
	"Pre-charge":       "پیش‌شارژ",
	"Fast charge (CC)": "شارژ سریع",
	"Taper (CV)":       "جریان پایانی",
	"Reserved":         "رزرو شده",
	"Top-off":          "تکمیلی",
	"Charge done":      "کامل شد",
	"Unknown":          "نامشخص",

	"No input":        "بدون ورودی",
	"Unknown adapter": "ناشناخته",
	"Non-standard":    "غیراستاندارد",
	"Not qualified":   "نامعتبر",

	"VSYSMIN regulation": "تنظیم ولتاژ",
	"Normal":             "عادی",

	classify.LabelFault:     "خطای سیستمی",
	classify.LabelOTG:       "پاوربانک (OTG) فعال",
	classify.LabelCharging:  "در حال شارژ",
	classify.LabelComplete:  "شارژ کامل",
	classify.LabelHIZ:       "ورودی غیرفعال (HIZ)",
	classify.LabelAdapter:   "متصل به آداپتور",
	classify.LabelBattery:   "تغذیه از باتری",
	classify.LabelUnpowered: "خاموش / بدون تغذیه",
}

var labelCatalog = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range persian {
		if err := b.SetString(language.Persian, key, msg); err != nil {
			panic(fmt.Sprintf("catalog %q: %v", key, err))
		}
	}
	return b
}()

var matcher = language.NewMatcher(supported)

// Localizer resolves message keys for one display language.
// Keys without a translation render as themselves.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer accepts a BCP 47 tag ("en", "fa", "fa-IR").
func NewLocalizer(lang string) (*Localizer, error) {
	t, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("display language %q: %w", lang, err)
	}

	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return nil, fmt.Errorf("display language %q not supported", lang)
	}

	tag := supported[idx]
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(labelCatalog)),
	}, nil
}

// DefaultLocalizer renders English.
func DefaultLocalizer() *Localizer {
	return &Localizer{
		tag:     language.English,
		printer: message.NewPrinter(language.English, message.Catalog(labelCatalog)),
	}
}

// Language returns the resolved tag.
func (l *Localizer) Language() language.Tag { return l.tag }

// Text localizes one message key.
func (l *Localizer) Text(key string) string {
	return l.printer.Sprintf(key)
}
