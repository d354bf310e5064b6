// Package wizard implements the four-step transfer request workflow.
//
// A Wizard owns one TransferDraft. Steps 1 and 2 are guarded by required
// fields, step 3 is the review, and step 4 is reached only through a
// successful submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/stwalsh4118/atlas/portal/internal/models"
)

// Step is a position in the wizard.
type Step int

const (
	Step1 Step = iota + 1 // property and buyer identity
	Step2                 // terms and documents
	Step3                 // review
	Step4                 // confirmation
)

// String implements fmt.Stringer.
func (s Step) String() string {
	switch s {
	case Step1:
		return "buyer"
	case Step2:
		return "terms"
	case Step3:
		return "review"
	case Step4:
		return "confirmation"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Wizard errors
var (
	ErrGuardFailed       = errors.New("required fields are missing")
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrSubmitInProgress  = errors.New("submission already in progress")
	ErrSubmissionFailed  = errors.New("transfer request submission failed")
	ErrCompleted         = errors.New("transfer request already submitted")
	ErrUnknownField      = errors.New("unknown draft field")
)

// Draft fields settable by name. Keys match the draft's JSON names.
const (
	FieldBuyerName     = "buyer_name"
	FieldBuyerIDNumber = "buyer_id_number"
	FieldBuyerEmail    = "buyer_email"
	FieldBuyerPhone    = "buyer_phone"
	FieldPrice         = "price"
	FieldProposedDate  = "proposed_date"
	FieldNotes         = "notes"
)

// guardFields lists the draft struct fields that must be set to leave a step.
var guardFields = map[Step][]string{
	Step1: {"BuyerName", "BuyerEmail"},
	Step2: {"Price", "ProposedDate"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submitter performs the write-intent call for a finished draft.
type Submitter interface {
	Submit(ctx context.Context, property models.PropertyPanel, draft models.TransferDraft) (Receipt, error)
}

// Patch is a partial draft update. Nil fields are left unchanged.
type Patch struct {
	BuyerName     *string `json:"buyer_name"`
	BuyerIDNumber *string `json:"buyer_id_number"`
	BuyerEmail    *string `json:"buyer_email"`
	BuyerPhone    *string `json:"buyer_phone"`
	Price         *string `json:"price"`
	ProposedDate  *string `json:"proposed_date"`
	Notes         *string `json:"notes"`
}

// Wizard is a single transfer request flow. It is safe for concurrent use;
// handlers for one wizard are serialised on its mutex.
type Wizard struct {
	mu         sync.Mutex
	property   models.PropertyPanel
	step       Step
	draft      models.TransferDraft
	submitting bool
	lastError  string
	receipt    *Receipt
}

// New creates a wizard at Step1 with an empty draft.
func New(property models.PropertyPanel) *Wizard {
	return &Wizard{
		property: property,
		step:     Step1,
		draft:    emptyDraft(),
	}
}

func emptyDraft() models.TransferDraft {
	return models.TransferDraft{Documents: []models.Attachment{}}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// CanAdvance reports whether Advance would succeed right now.
// It has no side effects.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Wizard) canAdvanceLocked() bool {
	_, guarded := guardFields[w.step]
	return guarded && !w.submitting && len(w.missingLocked()) == 0
}

// MissingFields returns the JSON names of required fields still empty for
// the current step or any step before it.
func (w *Wizard) MissingFields() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.missingLocked()
}

// requiredThrough returns the guarded fields of every step up to and
// including step. Fields checked by an earlier guard stay required since
// Update may still blank them.
func requiredThrough(step Step) []string {
	if step > Step3 {
		return nil
	}
	fields := []string{}
	for s := Step1; s <= step; s++ {
		fields = append(fields, guardFields[s]...)
	}
	return fields
}

func (w *Wizard) missingLocked() []string {
	fields := requiredThrough(w.step)
	if len(fields) == 0 {
		return []string{}
	}

	missing := []string{}
	err := validate.StructPartial(w.draft, fields...)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// Advance moves from Step1 to Step2 or from Step2 to Step3 when the
// required fields of the current and earlier steps are set. On a failed guard the step is
// unchanged and ErrGuardFailed is returned. Step3 leaves only via Submit.
func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return ErrSubmitInProgress
	}
	if w.step != Step1 && w.step != Step2 {
		return fmt.Errorf("%w: cannot advance from %s", ErrInvalidTransition, w.step)
	}
	if missing := w.missingLocked(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrGuardFailed, strings.Join(missing, ", "))
	}
	w.step++
	return nil
}

// Back moves one step toward Step1. It is a no-op at Step1.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return ErrSubmitInProgress
	}
	switch w.step {
	case Step1:
		return nil
	case Step4:
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, w.step)
	}
	w.step--
	return nil
}

// SetField updates one free-text draft field by its JSON name.
func (w *Wizard) SetField(name, value string) error {
	patch := Patch{}
	switch name {
	case FieldBuyerName:
		patch.BuyerName = &value
	case FieldBuyerIDNumber:
		patch.BuyerIDNumber = &value
	case FieldBuyerEmail:
		patch.BuyerEmail = &value
	case FieldBuyerPhone:
		patch.BuyerPhone = &value
	case FieldPrice:
		patch.Price = &value
	case FieldProposedDate:
		patch.ProposedDate = &value
	case FieldNotes:
		patch.Notes = &value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return w.Update(patch)
}

// Update applies a partial draft update. Values are stored verbatim.
func (w *Wizard) Update(patch Patch) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&w.draft.BuyerName, patch.BuyerName)
	apply(&w.draft.BuyerIDNumber, patch.BuyerIDNumber)
	apply(&w.draft.BuyerEmail, patch.BuyerEmail)
	apply(&w.draft.BuyerPhone, patch.BuyerPhone)
	apply(&w.draft.Price, patch.Price)
	apply(&w.draft.ProposedDate, patch.ProposedDate)
	apply(&w.draft.Notes, patch.Notes)
	return nil
}

// Attach appends files to the draft in the order given. Duplicates are kept.
func (w *Wizard) Attach(files ...models.Attachment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	w.draft.Documents = append(w.draft.Documents, files...)
	return nil
}

func (w *Wizard) editableLocked() error {
	if w.submitting {
		return ErrSubmitInProgress
	}
	if w.step == Step4 {
		return ErrCompleted
	}
	return nil
}

// Submit sends the draft from Step3. A draft whose buyer or terms fields
// were blanked after review is rejected with ErrGuardFailed before any
// call is made. On success the wizard moves to Step4,
// stores the receipt and clears the draft. On failure it stays at Step3
// with LastError set and may be submitted again.
func (w *Wizard) Submit(ctx context.Context, s Submitter) (*Receipt, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if w.step != Step3 {
		step := w.step
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot submit from %s", ErrInvalidTransition, step)
	}
	if missing := w.missingLocked(); len(missing) > 0 {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrGuardFailed, strings.Join(missing, ", "))
	}
	w.submitting = true
	w.lastError = ""
	property := w.property
	draft := copyDraft(w.draft)
	summary := w.reviewLocked()
	w.mu.Unlock()

	receipt, err := s.Submit(ctx, property, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.lastError = err.Error()
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	receipt.Summary = summary
	w.receipt = &receipt
	w.step = Step4
	w.draft = emptyDraft()
	return &receipt, nil
}

func copyDraft(d models.TransferDraft) models.TransferDraft {
	docs := make([]models.Attachment, len(d.Documents))
	copy(docs, d.Documents)
	d.Documents = docs
	return d
}

// Review is the step-3 summary. Values are shown exactly as entered.
type Review struct {
	ParcelID        string `json:"parcel_id"`
	PropertyAddress string `json:"property_address"`
	CurrentOwner    string `json:"current_owner"`
	BuyerName       string `json:"buyer_name"`
	BuyerEmail      string `json:"buyer_email"`
	Price           string `json:"price"`
	ProposedDate    string `json:"proposed_date"`
	DocumentCount   int    `json:"document_count"`
	Notes           string `json:"notes"`
}

// Review returns the summary of the current draft.
func (w *Wizard) Review() Review {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reviewLocked()
}

func (w *Wizard) reviewLocked() Review {
	return Review{
		ParcelID:        w.property.ParcelID,
		PropertyAddress: w.property.Address,
		CurrentOwner:    w.property.Owner,
		BuyerName:       w.draft.BuyerName,
		BuyerEmail:      w.draft.BuyerEmail,
		Price:           w.draft.Price,
		ProposedDate:    w.draft.ProposedDate,
		DocumentCount:   len(w.draft.Documents),
		Notes:           w.draft.Notes,
	}
}

// View is a point-in-time snapshot of a wizard for rendering.
type View struct {
	Step          Step                 `json:"step"`
	StepName      string               `json:"step_name"`
	CanAdvance    bool                 `json:"can_advance"`
	MissingFields []string             `json:"missing_fields"`
	Submitting    bool                 `json:"submitting"`
	LastError     string               `json:"last_error,omitempty"`
	Property      models.PropertyPanel `json:"property"`
	Draft         models.TransferDraft `json:"draft"`
	Review        *Review              `json:"review,omitempty"`
	Receipt       *Receipt             `json:"receipt,omitempty"`
}

// Snapshot returns the current view.
func (w *Wizard) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	missing := w.missingLocked()
	view := View{
		Step:          w.step,
		StepName:      w.step.String(),
		CanAdvance:    w.canAdvanceLocked(),
		MissingFields: missing,
		Submitting:    w.submitting,
		LastError:     w.lastError,
		Property:      w.property,
		Draft:         copyDraft(w.draft),
	}
	if w.step == Step3 {
		review := w.reviewLocked()
		view.Review = &review
	}
	if w.receipt != nil {
		receipt := *w.receipt
		view.Receipt = &receipt
	}
	return view
}
