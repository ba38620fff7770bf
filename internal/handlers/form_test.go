package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gdg-garage/equipment-purchase/internal/form"
	"github.com/gdg-garage/equipment-purchase/internal/sheet"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func postAction(t *testing.T, srvURL, query string, fields url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := http.PostForm(srvURL+"/"+query, fields)
	if err != nil {
		t.Fatal(err)
	}
	return resp, readBody(t, resp)
}

// postActionNoFollow returns the raw response to the POST, without following
// a redirect.
func postActionNoFollow(t *testing.T, h http.HandlerFunc, target string, fields url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func validFields() url.Values {
	return url.Values{
		"action":    {"submit"},
		"name":      {"Alice"},
		"equipment": {"as10"},
		"payment":   {"cheque"},
	}
}

func TestHandleShow(t *testing.T) {
	srv := newTestServer(t, sheet.NewMemoryTable(nil), &stubSubmitter{})

	resp, err := srv.Client().Get(srv.URL + "/?lieu=Argoulets&equipment=grip")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Refresh"); got != "" {
		t.Errorf("plain page should not refresh, got %q", got)
	}
	body := readBody(t, resp)

	for _, want := range []string{
		`name="location" value="Argoulets"`,
		`name="equipment" value="grip"`,
		`name="others" value="1"`,
		`name="slot" value="vendredi_midi"`,
		"← Retour",
		"https://forms.gle/fallback",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestHandleAction_Select(t *testing.T) {
	srv := newTestServer(t, sheet.NewMemoryTable(nil), &stubSubmitter{})

	fields := url.Values{
		"action":    {"select:vinastar"},
		"name":      {"Alice"},
		"equipment": {"as10"},
		"quantity":  {"2"},
		"location":  {"Argoulets"},
		"slot":      {"samedi"},
	}
	_, body := postAction(t, srv.URL, "", fields)

	for _, want := range []string{
		`name="equipment" value="vinastar"`,
		`name="quantity" value="1"`,
		`name="name" value="Alice"`,
		`name="location" value="Argoulets"`,
		`name="slot" value="samedi"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestHandleAction_Quantity(t *testing.T) {
	srv := newTestServer(t, sheet.NewMemoryTable(nil), &stubSubmitter{})

	fields := url.Values{"action": {"qty:+1"}, "equipment": {"vinastar"}, "quantity": {"1"}}
	_, body := postAction(t, srv.URL, "", fields)
	if !strings.Contains(body, `name="quantity" value="2"`) {
		t.Error("expected quantity 2 after increment")
	}

	// Already at the maximum; the increment is ignored.
	fields.Set("quantity", "2")
	_, body = postAction(t, srv.URL, "", fields)
	if !strings.Contains(body, `name="quantity" value="2"`) {
		t.Error("expected quantity to stay at 2")
	}
}

func TestHandleAction_SubmitRedirects(t *testing.T) {
	sub := &stubSubmitter{}
	h := NewFormHandler(FormOptions{ScriptURL: "http://ingest.test/api/ingest"}, sub, clock)

	fields := validFields()
	fields.Set("quantity", "2")
	fields.Set("location", "Argoulets")
	w := postActionNoFollow(t, h.HandleAction, "/", fields)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/?lieu=Argoulets&saved=1" {
		t.Errorf("unexpected redirect %q", got)
	}
	if sub.calls != 1 {
		t.Fatalf("expected 1 submission, got %d", sub.calls)
	}
	if sub.draft.Location != "Argoulets" || sub.draft.Quantity != 2 {
		t.Errorf("unexpected submitted draft %+v", sub.draft)
	}
}

func TestHandleAction_SubmitThenReload(t *testing.T) {
	sub := &stubSubmitter{}
	srv := newTestServer(t, sheet.NewMemoryTable(nil), sub)

	fields := validFields()
	fields.Set("location", "Argoulets")
	resp, body := postAction(t, srv.URL, "", fields)

	// The client followed the redirect to the confirmation page.
	if resp.Request.Method != http.MethodGet {
		t.Errorf("expected the confirmation to be fetched with GET, got %s", resp.Request.Method)
	}
	if got := resp.Header.Get("Refresh"); got != "2; url=/?lieu=Argoulets" {
		t.Errorf("unexpected Refresh header %q", got)
	}
	if !strings.Contains(body, form.MsgSaved) || !strings.Contains(body, "Nouvel achat") {
		t.Error("expected the confirmation")
	}
	if !strings.Contains(body, `name="location" value="Argoulets"`) {
		t.Error("the next draft should keep the location")
	}
	if strings.Contains(body, `name="name" value="Alice"`) {
		t.Error("the next draft should start empty")
	}

	// Reloading the confirmation page submits nothing.
	reload, err := srv.Client().Get(resp.Request.URL.String())
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, reload)
	if sub.calls != 1 {
		t.Errorf("expected 1 submission after reload, got %d", sub.calls)
	}
}

func TestHandleAction_SubmitFailure(t *testing.T) {
	sub := &stubSubmitter{err: &form.RemoteError{Message: "Failed to append row: locked"}}
	srv := newTestServer(t, sheet.NewMemoryTable(nil), sub)

	resp, body := postAction(t, srv.URL, "", validFields())

	if resp.Request.Method != http.MethodPost {
		t.Error("a failed submit must not redirect")
	}
	if got := resp.Header.Get("Refresh"); got != "" {
		t.Errorf("no reset expected after a failure, got %q", got)
	}
	if !strings.Contains(body, `class="error"`) || !strings.Contains(body, "Failed to append row: locked") {
		t.Error("expected the error message to be shown")
	}
	if !strings.Contains(body, `name="name" value="Alice"`) {
		t.Error("the draft should be kept")
	}
}

func TestHandleAction_SubmitMissingFields(t *testing.T) {
	sub := &stubSubmitter{}
	srv := newTestServer(t, sheet.NewMemoryTable(nil), sub)

	_, body := postAction(t, srv.URL, "", url.Values{"action": {"submit"}, "equipment": {"as10"}})

	if sub.calls != 0 {
		t.Error("an incomplete draft must not be submitted")
	}
	if !strings.Contains(body, "Veuillez remplir tous les champs requis") {
		t.Error("expected the missing fields message")
	}
}

func TestHandleAction_ScriptURLOverrideIgnoredByDefault(t *testing.T) {
	var internalHits int
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internalHits++
	}))
	defer internal.Close()

	table := sheet.NewMemoryTable(form.Headers)
	ingest := newTestServer(t, table, nil)

	// Zero-value options match the configuration defaults.
	h := NewFormHandler(FormOptions{ScriptURL: ingest.URL + "/api/ingest"}, form.NewClient(ingest.Client()), clock)

	target := "/?scriptUrl=" + url.QueryEscape(internal.URL+"/admin/delete")
	w := postActionNoFollow(t, h.HandleAction, target, validFields())

	if internalHits != 0 {
		t.Errorf("the override reached %s %d times", internal.URL, internalHits)
	}
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Header().Get("Location"), "scriptUrl") {
		t.Errorf("the ignored override should not be carried over: %q", w.Header().Get("Location"))
	}
	if n := len(table.Rows()); n != 1 {
		t.Errorf("expected the configured endpoint to get the row, got %d rows", n)
	}
}

func TestHandleAction_ScriptURLOverrideEnabled(t *testing.T) {
	sub := &stubSubmitter{}
	h := NewFormHandler(FormOptions{ScriptURL: "http://configured.test/exec", AllowScriptURLOverride: true}, sub, clock)

	postActionNoFollow(t, h.HandleAction, "/?scriptUrl="+url.QueryEscape("https://other.test/exec"), validFields())

	if sub.endpoint != "https://other.test/exec" {
		t.Errorf("expected the override to be used, got %q", sub.endpoint)
	}
}
