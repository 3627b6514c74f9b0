package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvatars struct{ url string }

func (f fakeAvatars) URL(string) string { return f.url }

type fakeProber struct {
	typ string
	err error
}

func (f fakeProber) Type(context.Context, string) (string, error) { return f.typ, f.err }

type mapAssets map[string]string

func (m mapAssets) Load(name string) (string, error) {
	if s, ok := m[name]; ok {
		return s, nil
	}
	return "", fmt.Errorf("no asset %s", name)
}

func testAssets(tpl string) mapAssets {
	return mapAssets{
		"bootstrap.min.css":   ".row{}",
		"fontawesome.min.css": ".fab{}",
		"normalize.css":       "body{}",
		"style.css":           ".entry{}",
		"print.css":           "@page{}",
		TemplateName:          tpl,
	}
}

func newTestEngine(prober ContentTyper, assets AssetLoader) *Engine {
	return NewEngine(fakeAvatars{url: "https://avatars.test/abc"}, prober, assets, nil).
		WithClock(func() time.Time { return testNow })
}

func TestEngineEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("ongoing work entry", func(t *testing.T) {
		doc := map[string]interface{}{
			"work": []interface{}{
				map[string]interface{}{"position": "Engineer", "startDate": "2019-03-01"},
			},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		assert.Equal(t, true, doc["workBool"])
		entry := doc["work"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "2019", entry["startDateYear"])
		assert.Equal(t, "March ", entry["startDateMonth"])
		assert.Equal(t, "Present", entry["endDateYear"])
		assert.Equal(t, "5 years 3 months", entry["experience"])
		assert.NotContains(t, entry, "boolHighlights")
		assert.NotContains(t, entry, "boolKeywords")
	})

	t.Run("empty education stays flagged off", func(t *testing.T) {
		doc := map[string]interface{}{"education": []interface{}{}}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		assert.Equal(t, false, doc["educationBool"])
	})

	t.Run("education detail joins area and study type", func(t *testing.T) {
		doc := map[string]interface{}{
			"education": []interface{}{
				map[string]interface{}{
					"institution": "MIT",
					"area":        "CS",
					"studyType":   "BSc",
					"startDate":   "2022-09-01",
					"endDate":     "2026-06-30",
					"courses":     []interface{}{"6.824"},
				},
				map[string]interface{}{"institution": "Evening school", "area": "Pottery"},
			},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		entries := doc["education"].([]interface{})
		first := entries[0].(map[string]interface{})
		assert.Equal(t, "CS, BSc", first["educationDetail"])
		assert.Equal(t, "2026 (expected)", first["endDateYear"])
		assert.Equal(t, true, first["boolCourses"])

		second := entries[1].(map[string]interface{})
		assert.Equal(t, "Pottery", second["educationDetail"])
		assert.Equal(t, "Present", second["endDateYear"])
	})

	t.Run("awards and publications get split dates", func(t *testing.T) {
		doc := map[string]interface{}{
			"awards": []interface{}{
				map[string]interface{}{"title": "Best Paper", "date": "2021-07-14"},
			},
			"publications": []interface{}{
				map[string]interface{}{"name": "On Rendering", "releaseDate": "2020-02"},
			},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		award := doc["awards"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "2021", award["year"])
		assert.Equal(t, "July ", award["month"])
		assert.Equal(t, "14", award["day"])

		pub := doc["publications"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "2020", pub["year"])
		assert.Equal(t, "February ", pub["month"])
	})

	t.Run("capital name and profiles", func(t *testing.T) {
		doc := map[string]interface{}{
			"basics": map[string]interface{}{
				"name": "Jane Doe",
				"profiles": []interface{}{
					map[string]interface{}{"network": "GitHub", "username": "jane", "url": "https://github.com/jane"},
					map[string]interface{}{"network": "Twitter", "username": "jane"},
					map[string]interface{}{"network": "Keybase", "username": "jane", "iconClass": "custom-icon"},
				},
			},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		basics := doc["basics"].(map[string]interface{})
		assert.Equal(t, "JANE DOE", basics["capitalName"])

		profiles := basics["profiles"].([]interface{})
		gh := profiles[0].(map[string]interface{})
		assert.Equal(t, "fab fa-github", gh["iconClass"])
		assert.Equal(t, "https://github.com/jane", gh["text"])
		assert.Equal(t, "github.com", gh["urlLabel"])

		tw := profiles[1].(map[string]interface{})
		assert.Equal(t, "Twitter: jane", tw["text"])

		kb := profiles[2].(map[string]interface{})
		assert.Equal(t, "custom-icon", kb["iconClass"])
	})

	t.Run("photo prefers image over gravatar", func(t *testing.T) {
		doc := map[string]interface{}{
			"basics": map[string]interface{}{
				"email": "jane@example.com",
				"image": "https://example.com/me.jpg",
			},
		}
		e := newTestEngine(fakeProber{typ: "image/jpeg"}, testAssets(""))
		e.Enrich(ctx, doc)

		assert.Equal(t, "https://example.com/me.jpg", doc["photo"])
		assert.Equal(t, true, doc["photoBool"])
		assert.Equal(t, "image/jpeg", doc["photoType"])
		basics := doc["basics"].(map[string]interface{})
		assert.Equal(t, "https://avatars.test/abc", basics["gravatar"])
	})

	t.Run("gravatar fills in when no image", func(t *testing.T) {
		doc := map[string]interface{}{
			"basics": map[string]interface{}{"email": "jane@example.com"},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))
		e.Enrich(ctx, doc)

		assert.Equal(t, "https://avatars.test/abc", doc["photo"])
	})

	t.Run("failed probe suppresses the photo", func(t *testing.T) {
		doc := map[string]interface{}{
			"basics": map[string]interface{}{"image": "https://example.com/me.jpg"},
		}
		e := newTestEngine(fakeProber{err: errors.New("unreachable")}, testAssets(""))
		e.Enrich(ctx, doc)

		assert.NotContains(t, doc, "photo")
		assert.NotContains(t, doc, "photoBool")
		assert.NotContains(t, doc, "photoType")
	})

	t.Run("enrichment is idempotent", func(t *testing.T) {
		doc := map[string]interface{}{
			"basics": map[string]interface{}{
				"name":  "Jane Doe",
				"email": "jane@example.com",
				"profiles": []interface{}{
					map[string]interface{}{"network": "GitHub", "username": "jane"},
				},
			},
			"work": []interface{}{
				map[string]interface{}{
					"position":   "Engineer",
					"startDate":  "2019-03-01",
					"highlights": []interface{}{"Shipped the thing"},
				},
			},
			"education": []interface{}{
				map[string]interface{}{"institution": "MIT", "area": "CS"},
			},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(""))

		e.Enrich(ctx, doc)
		first, err := json.Marshal(doc)
		require.NoError(t, err)

		e.Enrich(ctx, doc)
		second, err := json.Marshal(doc)
		require.NoError(t, err)

		assert.JSONEq(t, string(first), string(second))
	})
}

func TestEngineRender(t *testing.T) {
	ctx := context.Background()

	t.Run("substitutes flags and fields", func(t *testing.T) {
		tpl := `<style>{{{stylecss}}}</style>{{#basics}}{{capitalName}}{{/basics}}|{{#workBool}}{{#work}}{{position}} {{endDateYear}} ({{experience}}){{/work}}{{/workBool}}|{{#educationBool}}EDU{{/educationBool}}`
		doc := map[string]interface{}{
			"basics": map[string]interface{}{"name": "Jane Doe"},
			"work": []interface{}{
				map[string]interface{}{"position": "Engineer", "startDate": "2019-03-01"},
			},
			"education": []interface{}{},
		}
		e := newTestEngine(fakeProber{typ: "image/png"}, testAssets(tpl))

		html, err := e.Render(ctx, doc)
		require.NoError(t, err)

		assert.Contains(t, html, "<style>.entry{}</style>")
		assert.Contains(t, html, "JANE DOE")
		assert.Contains(t, html, "Engineer Present (5 years 3 months)")
		assert.NotContains(t, html, "EDU")
	})

	t.Run("missing asset fails the render", func(t *testing.T) {
		assets := testAssets("")
		delete(assets, "style.css")
		e := newTestEngine(fakeProber{typ: "image/png"}, assets)

		_, err := e.Render(ctx, map[string]interface{}{})
		assert.Error(t, err)
	})
}
