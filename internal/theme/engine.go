package theme

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// AvatarSource resolves an e-mail address to a default avatar URL.
type AvatarSource interface {
	URL(email string) string
}

// ContentTyper probes a URL and reports its media type.
type ContentTyper interface {
	Type(ctx context.Context, rawURL string) (string, error)
}

// AssetLoader supplies the raw text of template and stylesheet resources
// by logical file name.
type AssetLoader interface {
	Load(name string) (string, error)
}

// TemplateName is the logical name of the mustache theme template.
const TemplateName = "resume.template.html"

// stylesheetFields maps the view-model field a stylesheet is inlined
// under to the asset file that backs it.
var stylesheetFields = [][2]string{
	{"bootstrap", "bootstrap.min.css"},
	{"fontawesome", "fontawesome.min.css"},
	{"normalize", "normalize.css"},
	{"stylecss", "style.css"},
	{"printcss", "print.css"},
}

// presenceSpecs lists every optional section together with the field that
// decides whether it has usable content. Work and volunteer count as
// present on any element at all.
var presenceSpecs = []SectionSpec{
	{Name: "skills", Field: "name"},
	{Name: "interests", Field: "name"},
	{Name: "languages", Field: "language"},
	{Name: "references", Field: "name"},
	{Name: "publications", Field: "name"},
	{Name: "awards", Field: "title"},
	{Name: "education", Field: "institution"},
	{Name: "projects", Field: "name"},
	{Name: "work"},
	{Name: "volunteer"},
}

// Engine enriches a decoded resume document into the view model the
// mustache template consumes, then renders it. Every derivation is
// additive: raw fields are never removed or overwritten, so running the
// pipeline twice over the same document is a no-op the second time.
type Engine struct {
	avatars AvatarSource
	prober  ContentTyper
	assets  AssetLoader
	now     func() time.Time
	log     *zap.Logger
}

func NewEngine(avatars AvatarSource, prober ContentTyper, assets AssetLoader, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		avatars: avatars,
		prober:  prober,
		assets:  assets,
		now:     time.Now,
		log:     log,
	}
}

// WithClock overrides the render-time clock. Tests use this; production
// code keeps time.Now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Render enriches the document and substitutes it into the theme
// template, returning the final HTML. The document must already have
// passed shape validation; Render itself fails only on asset loading or
// template substitution problems.
func (e *Engine) Render(ctx context.Context, doc map[string]interface{}) (string, error) {
	e.Enrich(ctx, doc)

	for _, f := range stylesheetFields {
		text, err := e.assets.Load(f[1])
		if err != nil {
			return "", err
		}
		doc[f[0]] = text
	}

	tpl, err := e.assets.Load(TemplateName)
	if err != nil {
		return "", err
	}
	return mustache.Render(tpl, doc)
}

// Enrich derives every presentation field the template relies on,
// in place. It never fails: each step degrades per-field on bad input.
// The one external call, probing the photo's content type, is treated as
// "no photo" when it errors.
func (e *Engine) Enrich(ctx context.Context, doc map[string]interface{}) {
	basics, _ := doc["basics"].(map[string]interface{})

	if basics != nil {
		if name, _ := basics["name"].(string); name != "" {
			basics["capitalName"] = strings.ToUpper(name)
		}
	}

	e.resolvePhoto(ctx, doc, basics)

	if basics != nil {
		if profiles, ok := basics["profiles"].([]interface{}); ok {
			for _, raw := range profiles {
				if p, ok := raw.(map[string]interface{}); ok {
					decorateProfile(p)
				}
			}
		}
	}

	ApplyPresenceFlags(doc, presenceSpecs)

	if flag, _ := doc["workBool"].(bool); flag {
		e.eachEntry(doc["work"], e.decorateEngagement)
	}
	if flag, _ := doc["volunteerBool"].(bool); flag {
		e.eachEntry(doc["volunteer"], e.decorateEngagement)
	}
	if flag, _ := doc["educationBool"].(bool); flag {
		e.eachEntry(doc["education"], e.decorateEducation)
	}
	if flag, _ := doc["awardsBool"].(bool); flag {
		e.eachEntry(doc["awards"], func(entry map[string]interface{}) {
			date, _ := entry["date"].(string)
			splitDate(entry, date)
		})
	}
	if flag, _ := doc["publicationsBool"].(bool); flag {
		e.eachEntry(doc["publications"], func(entry map[string]interface{}) {
			date, _ := entry["releaseDate"].(string)
			splitDate(entry, date)
		})
	}
}

func (e *Engine) eachEntry(section interface{}, fn func(map[string]interface{})) {
	items, ok := section.([]interface{})
	if !ok {
		return
	}
	for _, raw := range items {
		if entry, ok := raw.(map[string]interface{}); ok {
			fn(entry)
		}
	}
}

// resolvePhoto picks basics.image over a gravatar derived from
// basics.email, then probes the winner's content type. A failed probe
// suppresses the photo instead of failing the render.
func (e *Engine) resolvePhoto(ctx context.Context, doc, basics map[string]interface{}) {
	if basics == nil {
		return
	}
	if email, _ := basics["email"].(string); email != "" && e.avatars != nil {
		basics["gravatar"] = e.avatars.URL(email)
	}
	photo, _ := basics["image"].(string)
	if photo == "" {
		photo, _ = basics["gravatar"].(string)
	}
	if photo == "" {
		return
	}
	photoType, err := e.prober.Type(ctx, photo)
	if err != nil {
		e.log.Warn("photo content-type probe failed, omitting photo",
			zap.String("url", photo), zap.Error(err))
		return
	}
	doc["photo"] = photo
	doc["photoBool"] = true
	doc["photoType"] = photoType
}

// decorateProfile fills the icon class and display text of one social
// profile. A caller-supplied iconClass always wins.
func decorateProfile(p map[string]interface{}) {
	network, _ := p["network"].(string)
	if ic, _ := p["iconClass"].(string); ic == "" && network != "" {
		p["iconClass"] = IconClass(network)
	}
	if u, _ := p["url"].(string); u != "" {
		p["text"] = u
		if label := urlLabel(u); label != "" {
			p["urlLabel"] = label
		}
	} else {
		username, _ := p["username"].(string)
		p["text"] = network + ": " + username
	}
}

// urlLabel reduces a profile URL to a tidy eTLD+1 label for compact
// display, "" when the URL is not parseable as a host.
func urlLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

// decorateEngagement handles work and volunteer entries identically:
// range display fields, highlight/keyword flags and the elapsed-time
// string.
func (e *Engine) decorateEngagement(entry map[string]interface{}) {
	startDate, _ := entry["startDate"].(string)
	endDate, _ := entry["endDate"].(string)
	normalizeRange(entry, startDate, endDate, e.now())
	flagStringArray(entry, "highlights")
	flagStringArray(entry, "keywords")
	if startDate != "" {
		entry["experience"] = experienceString(startDate, endDate, e.now())
	}
}

func (e *Engine) decorateEducation(entry map[string]interface{}) {
	startDate, _ := entry["startDate"].(string)
	endDate, _ := entry["endDate"].(string)
	normalizeRange(entry, startDate, endDate, e.now())
	flagStringArray(entry, "keywords")
	flagStringArray(entry, "courses")
	area, _ := entry["area"].(string)
	studyType, _ := entry["studyType"].(string)
	if area != "" && studyType != "" {
		entry["educationDetail"] = area + ", " + studyType
	} else {
		entry["educationDetail"] = area + studyType
	}
}

// flagStringArray sets entry["bool<Field>"] when the field is a list
// whose first element is a non-empty string.
func flagStringArray(entry map[string]interface{}, field string) {
	arr, ok := entry[field].([]interface{})
	if !ok || len(arr) == 0 {
		return
	}
	if s, ok := arr[0].(string); ok && s != "" {
		entry["bool"+capitalizeFirst(field)] = true
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
