// Package form models the create/edit dialogs of the back-office: a draft
// being typed into, a required-field check, and the submit round trip.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/judyrop/sns-catalog/client"
)

type State int

const (
	Closed State = iota
	OpenCreate
	OpenEdit
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenCreate:
		return "open(create)"
	case OpenEdit:
		return "open(edit)"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// RequiredMessage is shown when a required field is empty.
const RequiredMessage = "Please fill in all required fields"

var (
	ErrNotOpen  = errors.New("form is not open")
	ErrRequired = errors.New(RequiredMessage)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Modal is one dialog editing drafts of type D. On submit it runs the create
// or update call, then refetch, then closes. A failed call reopens the dialog
// with the error text; a 401 closes it.
type Modal[D any] struct {
	state  State
	mode   State
	editID uint
	draft  D
	errMsg string

	create  func(ctx context.Context, draft D) error
	update  func(ctx context.Context, id uint, draft D) error
	refetch func(ctx context.Context) error
}

// NewModal builds a dialog. create may be nil for edit-only dialogs; refetch
// may be nil.
func NewModal[D any](
	create func(ctx context.Context, draft D) error,
	update func(ctx context.Context, id uint, draft D) error,
	refetch func(ctx context.Context) error,
) *Modal[D] {
	return &Modal[D]{create: create, update: update, refetch: refetch}
}

func (m *Modal[D]) State() State  { return m.state }
func (m *Modal[D]) Error() string { return m.errMsg }
func (m *Modal[D]) EditID() uint  { return m.editID }

// Draft is the value being edited. It stays valid until the next Open.
func (m *Modal[D]) Draft() *D { return &m.draft }

func (m *Modal[D]) OpenCreate(draft D) {
	m.open(OpenCreate, 0, draft)
}

func (m *Modal[D]) OpenEdit(id uint, draft D) {
	m.open(OpenEdit, id, draft)
}

func (m *Modal[D]) open(mode State, id uint, draft D) {
	m.state, m.mode, m.editID = mode, mode, id
	m.draft = draft
	m.errMsg = ""
}

func (m *Modal[D]) Close() {
	var zero D
	m.state, m.mode, m.editID = Closed, Closed, 0
	m.draft = zero
	m.errMsg = ""
}

// Submit validates the draft and sends it. Nothing is sent when a required
// field is empty.
func (m *Modal[D]) Submit(ctx context.Context) error {
	if m.state != OpenCreate && m.state != OpenEdit {
		return ErrNotOpen
	}
	if err := validate.Struct(m.draft); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			m.errMsg = RequiredMessage
			return ErrRequired
		}
		return err
	}

	m.state = Submitting
	m.errMsg = ""

	var err error
	switch m.mode {
	case OpenCreate:
		if m.create == nil {
			err = errors.New("create is not supported")
			break
		}
		err = m.create(ctx, m.draft)
	case OpenEdit:
		err = m.update(ctx, m.editID, m.draft)
	}
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			m.Close()
			return err
		}
		m.state = m.mode
		m.errMsg = client.UserMessage(err, "")
		return err
	}

	m.Close()
	if m.refetch != nil {
		if err := m.refetch(ctx); err != nil {
			return fmt.Errorf("refetch: %w", err)
		}
	}
	return nil
}

// Requests converts a draft into the create and update bodies of its entity.
type Requests[C, U any] interface {
	CreateRequest() C
	UpdateRequest() U
}

// ForResource wires a dialog to the admin CRUD calls of one entity. Only D
// needs spelling out; the rest follows from res.
func ForResource[D Requests[C, U], T, C, U any](res *client.Resource[T, C, U], refetch func(ctx context.Context) error) *Modal[D] {
	return NewModal(
		func(ctx context.Context, d D) error {
			_, err := res.Create(ctx, d.CreateRequest())
			return err
		},
		func(ctx context.Context, id uint, d D) error {
			_, err := res.Update(ctx, id, d.UpdateRequest())
			return err
		},
		refetch,
	)
}

// ForCompanyInfo wires the edit-only company information dialog.
func ForCompanyInfo(c *client.Client, refetch func(ctx context.Context) error) *Modal[CompanyInfoDraft] {
	return NewModal(
		nil,
		func(ctx context.Context, _ uint, d CompanyInfoDraft) error {
			_, err := c.UpdateCompanyInfo(ctx, d.UpdateRequest())
			return err
		},
		refetch,
	)
}
