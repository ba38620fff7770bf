package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/equipment-purchase/internal/form"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

type FormOptions struct {
	ScriptURL              string
	AllowScriptURLOverride bool
	GoogleFormURL          string
	GithubRepoURL          string
}

// FormHandler serves the purchase form. The draft travels in the page's
// fields and every button posts one action back, so the server recomputes
// the derived values on each interaction.
type FormHandler struct {
	opts      FormOptions
	submitter form.Submitter
	now       func() time.Time
}

func NewFormHandler(opts FormOptions, submitter form.Submitter, now func() time.Time) *FormHandler {
	if now == nil {
		now = time.Now
	}
	return &FormHandler{opts: opts, submitter: submitter, now: now}
}

type formView struct {
	Draft          *form.Draft
	Primary        []form.EquipmentOption
	Secondary      []form.EquipmentOption
	Locations      []string
	TimeSlots      []form.TimeSlot
	PaymentMethods []form.PaymentMethod
	Status         string
	Message        string
	ResetURL       string
	GoogleFormURL  string
	GithubRepoURL  string
}

func (h *FormHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	pinned := h.pinned(r)
	draft := form.NewDraft(pinned, h.now())
	view := h.view(draft, pinned)

	if r.URL.Query().Get("saved") == "1" {
		// Confirmation after a redirected submit; reloading it sends nothing.
		view.Status = form.StatusSucceeded.String()
		view.Message = form.MsgSaved
		w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", int(form.ResetDelay/time.Second), view.ResetURL))
	}
	h.render(w, view)
}

func (h *FormHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	pinned := h.pinned(r)
	draft := draftFromForm(r, pinned, h.now())

	action := r.PostForm.Get("action")
	kind, arg, _ := strings.Cut(action, ":")
	var err error
	switch kind {
	case "select":
		err = draft.SelectEquipment(arg)
	case "others":
		draft.CloseOthers()
	case "qty":
		delta, convErr := strconv.Atoi(arg)
		if convErr == nil {
			draft.AdjustQuantity(delta)
		}
	case "location":
		err = draft.SelectLocation(arg)
	case "slot":
		err = draft.SelectTimeSlot(arg)
	case "payment":
		err = draft.SelectPayment(arg)
	case "submit":
		h.submit(w, r, draft, pinned)
		return
	}
	if err != nil {
		log.Printf("Ignored form action %q: %v", action, err)
	}

	h.render(w, h.view(draft, pinned))
}

// submit answers a successful submission with a redirect to the confirmation
// page, so reloading it cannot append the row twice. Failures re-render the
// draft with the error.
func (h *FormHandler) submit(w http.ResponseWriter, r *http.Request, draft *form.Draft, pinned form.Pinned) {
	session := form.NewSession(draft, pinned, h.opts.ScriptURL, h.submitter,
		form.WithClock(h.now),
		// The confirmation page performs the reset by reloading.
		form.WithScheduler(func(time.Duration, func()) {}),
	)

	if err := session.Submit(r.Context()); err != nil {
		log.Printf("Submission failed: %v", err)
		current := session.Draft()
		view := h.view(&current, pinned)
		view.Status = session.Status().String()
		view.Message = session.Message()
		h.render(w, view)
		return
	}

	q := resetQuery(pinned, draft.Location)
	q.Set("saved", "1")
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func (h *FormHandler) pinned(r *http.Request) form.Pinned {
	pinned := form.ParseParams(r.URL.Query())
	if !h.opts.AllowScriptURLOverride {
		pinned.EndpointURL = ""
	}
	return pinned
}

// draftFromForm rebuilds the draft from the posted fields. Values that are
// not in the catalog are dropped.
func draftFromForm(r *http.Request, pinned form.Pinned, now time.Time) *form.Draft {
	d := form.NewDraft(pinned, now)
	d.EquipmentID = ""
	d.ShowOthers = r.PostForm.Get("others") == "1"
	d.MemberName = r.PostForm.Get("name")

	if id := r.PostForm.Get("equipment"); id != "" {
		if _, ok := form.Equipment(id); ok {
			d.EquipmentID = id
		}
	}
	if q, err := strconv.Atoi(r.PostForm.Get("quantity")); err == nil {
		d.Quantity = min(max(q, 1), d.MaxQuantity())
	}
	if loc := r.PostForm.Get("location"); form.IsLocation(loc) {
		d.Location = loc
	}
	if slot := r.PostForm.Get("slot"); slot != "" {
		_ = d.SelectTimeSlot(slot)
	}
	if payment := r.PostForm.Get("payment"); payment != "" {
		_ = d.SelectPayment(payment)
	}
	return d
}

// resetQuery keeps the pinned values and the location in use, so the next
// draft starts where the volunteer is.
func resetQuery(pinned form.Pinned, location string) url.Values {
	q := pinned.Query()
	if form.IsLocation(location) {
		q.Set("lieu", location)
	}
	return q
}

func (h *FormHandler) view(draft *form.Draft, pinned form.Pinned) formView {
	resetURL := "/"
	if q := resetQuery(pinned, draft.Location).Encode(); q != "" {
		resetURL += "?" + q
	}

	return formView{
		Draft:          draft,
		Primary:        form.PrimaryEquipment,
		Secondary:      form.SecondaryEquipment,
		Locations:      form.Locations,
		TimeSlots:      form.TimeSlots,
		PaymentMethods: form.PaymentMethods,
		Status:         form.StatusIdle.String(),
		ResetURL:       resetURL,
		GoogleFormURL:  h.opts.GoogleFormURL,
		GithubRepoURL:  h.opts.GithubRepoURL,
	}
}

func (h *FormHandler) render(w http.ResponseWriter, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, view); err != nil {
		log.Printf("Failed to render form: %v", err)
	}
}
