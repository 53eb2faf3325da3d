package envelope

import (
	"github.com/paritytech/bcts-go/knownvalues"
)

// AddAttachment attaches a vendor-scoped payload: the payload is wrapped
// as the attachment's subject, carries a 'vendor' assertion and an
// optional 'conformsTo' URI, and is attached under the 'attachment'
// predicate.
func (e *Envelope) AddAttachment(payload *Envelope, vendor string, conformsTo string) *Envelope {
	attachment := payload.Wrap().
		AddAssertion(NewKnownValue(knownvalues.Vendor), NewString(vendor))
	if conformsTo != "" {
		attachment = attachment.AddAssertion(NewKnownValue(knownvalues.ConformsTo), NewString(conformsTo))
	}
	return e.AddAssertion(NewKnownValue(knownvalues.Attachment), attachment)
}

// Attachments returns every attachment object.
func (e *Envelope) Attachments() []*Envelope {
	var out []*Envelope
	for _, a := range e.AssertionsWithKnownPredicate(knownvalues.Attachment) {
		if object, err := a.Object(); err == nil {
			out = append(out, object)
		}
	}
	return out
}

// AttachmentsWithVendor filters attachments by their vendor string.
func (e *Envelope) AttachmentsWithVendor(vendor string) []*Envelope {
	var out []*Envelope
	for _, attachment := range e.Attachments() {
		v, err := attachment.AttachmentVendor()
		if err == nil && v == vendor {
			out = append(out, attachment)
		}
	}
	return out
}

// AttachmentVendor reads the 'vendor' assertion of an attachment.
func (e *Envelope) AttachmentVendor() (string, error) {
	object, err := e.ObjectForKnownPredicate(knownvalues.Vendor)
	if err != nil {
		return "", err
	}
	leaf, err := object.Leaf()
	if err != nil {
		return "", err
	}
	s, err := leaf.Text()
	if err != nil {
		return "", ErrTypeMismatch
	}
	return s, nil
}

// AttachmentConformsTo reads the optional 'conformsTo' assertion.
func (e *Envelope) AttachmentConformsTo() (string, error) {
	object, err := e.ObjectForKnownPredicate(knownvalues.ConformsTo)
	if err != nil {
		return "", err
	}
	leaf, err := object.Leaf()
	if err != nil {
		return "", err
	}
	s, err := leaf.Text()
	if err != nil {
		return "", ErrTypeMismatch
	}
	return s, nil
}

// AttachmentPayload unwraps the attachment's subject.
func (e *Envelope) AttachmentPayload() (*Envelope, error) {
	return e.TryUnwrap()
}
