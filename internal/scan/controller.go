// Package scan models the QR-scanner dialog's mode handling: manual
// paste, file upload, or live camera, with a scan-to-confirm step
// before anything is imported.
package scan

import (
	"errors"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/vcard"
)

type Mode string

const (
	ModeManual Mode = "manual"
	ModeUpload Mode = "upload"
	ModeCamera Mode = "camera"
)

var (
	ErrDraftPending = errors.New("a scanned contact is awaiting confirmation")
	ErrNoDraft      = errors.New("no scanned contact to confirm")
	ErrCameraOff    = errors.New("camera mode is not active")
	ErrEmptyInput   = errors.New("no contact data entered")
)

// Importer receives the decoded draft when the user commits. It is the
// add-contact collaborator; the controller never talks to storage.
type Importer func(domain.Draft) error

// Controller is a plain state machine driven by one UI event loop at a
// time, matching the single-threaded execution model of the dialog it
// replaces. It is not safe for concurrent use.
type Controller struct {
	mode     Mode
	cameraOn bool
	buffer   string
	draft    *domain.Draft
	importer Importer
}

func NewController(importer Importer) *Controller {
	return &Controller{mode: ModeManual, importer: importer}
}

func (c *Controller) Mode() Mode             { return c.mode }
func (c *Controller) CameraActive() bool     { return c.cameraOn }
func (c *Controller) Buffer() string         { return c.buffer }
func (c *Controller) Pending() *domain.Draft { return c.draft }

// Select switches the dialog mode. Camera mode is refused while a
// scanned draft awaits confirmation; every other switch is direct.
func (c *Controller) Select(m Mode) error {
	if m == ModeCamera && c.draft != nil {
		return ErrDraftPending
	}
	c.mode = m
	if m != ModeCamera {
		c.cameraOn = false
	}
	return nil
}

// SetBuffer stores pasted text or uploaded file contents for Submit.
func (c *Controller) SetBuffer(text string) { c.buffer = text }

func (c *Controller) StartCamera() error {
	if c.mode != ModeCamera {
		return ErrCameraOff
	}
	c.cameraOn = true
	return nil
}

// HandleScan consumes one camera decode. The camera always stops. A
// decodable payload becomes a pending draft for explicit confirmation;
// anything else drops back to manual mode with the raw text in the
// buffer so the user can fix it by hand.
func (c *Controller) HandleScan(text string) error {
	c.cameraOn = false
	d, err := vcard.Decode(text)
	if err != nil {
		c.mode = ModeManual
		c.buffer = text
		return err
	}
	c.draft = &d
	return nil
}

// Submit is the manual/upload "Add Contact" action: decode the buffer
// and hand the draft to the importer. On failure the buffer is kept so
// the input can be corrected in place.
func (c *Controller) Submit() error {
	if c.buffer == "" {
		return ErrEmptyInput
	}
	d, err := vcard.Decode(c.buffer)
	if err != nil {
		return err
	}
	if err := c.importer(d); err != nil {
		return err
	}
	c.reset()
	return nil
}

// Confirm is the camera-flow "Create Contact" action on the pending
// draft. The dialog closes only when the import succeeds.
func (c *Controller) Confirm() error {
	if c.draft == nil {
		return ErrNoDraft
	}
	if err := c.importer(*c.draft); err != nil {
		return err
	}
	c.reset()
	return nil
}

// Cancel discards the pending draft and keeps the dialog open.
func (c *Controller) Cancel() { c.draft = nil }

// Close resets every sub-state, whatever state the dialog is in.
func (c *Controller) Close() { c.reset() }

func (c *Controller) reset() {
	c.mode = ModeManual
	c.cameraOn = false
	c.buffer = ""
	c.draft = nil
}
