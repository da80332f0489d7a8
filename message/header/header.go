package header

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zostay/go-mailenc/message/encoder"
	"github.com/zostay/go-mailenc/message/file"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/header/param"
	"github.com/zostay/go-mailenc/message/transfer"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongComponent is returned by typed getters when the field holds a
	// component of some other type.
	ErrWrongComponent = errors.New("header field holds a different component type")

	// ErrBadFieldName is returned when a field name is empty or contains a
	// character other than printable ASCII without a colon.
	ErrBadFieldName = errors.New("invalid header field name")
)

// These are standard headers defined in RFC 5322, RFC 2045, and RFC 2183.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDescription      = "Content-Description"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-ID"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	Keywords                = "Keywords"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	Received                = "Received"
	References              = "References"
	ReplyTo                 = "Reply-To"
	ReturnPath              = "Return-Path"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// FieldError places an encoding failure at a header field.
type FieldError struct {
	Name string
	Err  error
}

// Error names the field.
func (err *FieldError) Error() string {
	return fmt.Sprintf("header %s: %v", err.Name, err.Err)
}

// Unwrap returns the underlying error.
func (err *FieldError) Unwrap() error {
	return err.Err
}

// Field is a single header field.
type Field struct {
	Name string
	Body component.Component
}

// ValidateName checks that name is a valid RFC 5322 field name.
func ValidateName(name string) error {
	if name == "" {
		return ErrBadFieldName
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < '!' || c > '~' || c == ':' {
			return ErrBadFieldName
		}
	}
	return nil
}

// Encode writes the field as `Name: body` followed by CRLF.
func (f *Field) Encode(e *encoder.Encoder) error {
	if err := ValidateName(f.Name); err != nil {
		return &FieldError{f.Name, err}
	}
	if f.Body == nil {
		return &FieldError{f.Name, component.ErrEmpty}
	}

	e.WriteFieldName(f.Name)
	if err := f.Body.Encode(e); err != nil {
		return &FieldError{f.Name, err}
	}
	e.FinishHeader()
	return nil
}

// Header is an ordered collection of fields. The zero value is an empty
// header ready to use.
type Header struct {
	fields []*Field
}

// Clone returns a copy of the header. Components are immutable, so the copy
// shares them.
func (h *Header) Clone() *Header {
	fs := make([]*Field, len(h.fields))
	for i, f := range h.fields {
		c := *f
		fs[i] = &c
	}
	return &Header{fs}
}

// Len returns the number of fields.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns the fields in order. Do not modify the returned slice.
func (h *Header) Fields() []*Field {
	return h.fields
}

// Names returns the field names in order, including repeats.
func (h *Header) Names() []string {
	ns := make([]string, len(h.fields))
	for i, f := range h.fields {
		ns[i] = f.Name
	}
	return ns
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Add appends a field, even when one of the same name exists.
func (h *Header) Add(name string, body component.Component) {
	h.fields = append(h.fields, &Field{name, body})
}

// Set replaces the body of the first field with the name and deletes the
// others. If there is no such field, it is appended.
func (h *Header) Set(name string, body component.Component) {
	found := false
	fs := h.fields[:0]
	for _, f := range h.fields {
		if sameName(f.Name, name) {
			if found {
				continue
			}
			found = true
			f.Body = body
		}
		fs = append(fs, f)
	}
	h.fields = fs
	if !found {
		h.Add(name, body)
	}
}

// InsertBefore inserts a field at index i. An index past the end appends.
func (h *Header) InsertBefore(i int, name string, body component.Component) {
	if i < 0 {
		i = 0
	}
	if i >= len(h.fields) {
		h.Add(name, body)
		return
	}
	h.fields = append(h.fields[:i], append([]*Field{{name, body}}, h.fields[i:]...)...)
}

// Delete removes every field with the name and returns how many there were.
func (h *Header) Delete(name string) int {
	n := 0
	fs := h.fields[:0]
	for _, f := range h.fields {
		if sameName(f.Name, name) {
			n++
			continue
		}
		fs = append(fs, f)
	}
	h.fields = fs
	return n
}

// Has reports whether a field with the name exists.
func (h *Header) Has(name string) bool {
	for _, f := range h.fields {
		if sameName(f.Name, name) {
			return true
		}
	}
	return false
}

// Get returns the body of the only field with the name. It returns
// ErrNoSuchField or ErrManyFields otherwise.
func (h *Header) Get(name string) (component.Component, error) {
	var body component.Component
	n := 0
	for _, f := range h.fields {
		if sameName(f.Name, name) {
			body = f.Body
			n++
		}
	}
	switch n {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoSuchField, name)
	case 1:
		return body, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrManyFields, name)
}

// GetAll returns the bodies of every field with the name, in order.
func (h *Header) GetAll(name string) []component.Component {
	bodies := []component.Component{}
	for _, f := range h.fields {
		if sameName(f.Name, name) {
			bodies = append(bodies, f.Body)
		}
	}
	return bodies
}

// Encode writes every field in order.
func (h *Header) Encode(e *encoder.Encoder) error {
	for _, f := range h.fields {
		if err := f.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

func getAs[T component.Component](h *Header, name string) (T, error) {
	var zero T
	c, err := h.Get(name)
	if err != nil {
		return zero, err
	}
	v, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongComponent, name, c)
	}
	return v, nil
}

// SetSubject sets the Subject field.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, component.NewUnstructured(s))
}

// GetSubject returns the Subject text.
func (h *Header) GetSubject() (string, error) {
	u, err := getAs[component.Unstructured](h, Subject)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// SetComments sets the Comments field.
func (h *Header) SetComments(s string) {
	h.Set(Comments, component.NewUnstructured(s))
}

// SetContentDescription sets the Content-Description field.
func (h *Header) SetContentDescription(s string) {
	h.Set(ContentDescription, component.NewUnstructured(s))
}

// SetKeywords sets the Keywords field to a list of phrases.
func (h *Header) SetKeywords(keywords ...string) {
	pl := make(component.PhraseList, len(keywords))
	for i, k := range keywords {
		pl[i] = component.NewPhrase(k)
	}
	h.Set(Keywords, pl)
}

// SetFrom sets the From field.
func (h *Header) SetFrom(mbs ...component.Mailbox) {
	h.Set(From, component.MailboxList(mbs))
}

// GetFrom returns the From mailboxes.
func (h *Header) GetFrom() (component.MailboxList, error) {
	return getAs[component.MailboxList](h, From)
}

// SetSender sets the Sender field.
func (h *Header) SetSender(mb component.Mailbox) {
	h.Set(Sender, mb)
}

// SetTo sets the To field.
func (h *Header) SetTo(as ...component.Address) {
	h.Set(To, component.AddressList(as))
}

// GetTo returns the To addresses.
func (h *Header) GetTo() (component.AddressList, error) {
	return getAs[component.AddressList](h, To)
}

// SetCc sets the Cc field.
func (h *Header) SetCc(as ...component.Address) {
	h.Set(Cc, component.AddressList(as))
}

// GetCc returns the Cc addresses.
func (h *Header) GetCc() (component.AddressList, error) {
	return getAs[component.AddressList](h, Cc)
}

// SetBcc sets the Bcc field.
func (h *Header) SetBcc(as ...component.Address) {
	h.Set(Bcc, component.AddressList(as))
}

// SetReplyTo sets the Reply-To field.
func (h *Header) SetReplyTo(as ...component.Address) {
	h.Set(ReplyTo, component.AddressList(as))
}

// SetAddressList parses s with component.ParseAddressList and sets the named
// field to the result.
func (h *Header) SetAddressList(name, s string) error {
	al, err := component.ParseAddressList(s)
	if err != nil {
		return &FieldError{name, err}
	}
	h.Set(name, al)
	return nil
}

// SetDate sets the Date field.
func (h *Header) SetDate(t time.Time) {
	h.Set(Date, component.NewDateTime(t))
}

// GetDate returns the time of the Date field.
func (h *Header) GetDate() (time.Time, error) {
	dt, err := getAs[component.DateTime](h, Date)
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time, nil
}

// SetMessageID sets the Message-ID field.
func (h *Header) SetMessageID(id component.MessageID) {
	h.Set(MessageID, id)
}

// GetMessageID returns the Message-ID.
func (h *Header) GetMessageID() (component.MessageID, error) {
	return getAs[component.MessageID](h, MessageID)
}

// SetContentID sets the Content-ID field.
func (h *Header) SetContentID(id component.MessageID) {
	h.Set(ContentID, id)
}

// SetInReplyTo sets the In-Reply-To field.
func (h *Header) SetInReplyTo(ids ...component.MessageID) {
	h.Set(InReplyTo, component.MessageIDList(ids))
}

// SetReferences sets the References field.
func (h *Header) SetReferences(ids ...component.MessageID) {
	h.Set(References, component.MessageIDList(ids))
}

// SetReturnPath sets the Return-Path field. An empty email sets the null
// path.
func (h *Header) SetReturnPath(email string) error {
	p, err := component.NewPath(email)
	if err != nil {
		return &FieldError{ReturnPath, err}
	}
	h.Set(ReturnPath, p)
	return nil
}

// AddReceived prepends a Received field. Received fields are added by each
// hop at the top of the header.
func (h *Header) AddReceived(r component.Received) {
	h.InsertBefore(0, Received, r)
}

// SetContentType sets the Content-Type field.
func (h *Header) SetContentType(v *param.Value) {
	h.Set(ContentType, component.NewMediaType(v))
}

// GetContentType returns the parameterized value of the Content-Type field.
func (h *Header) GetContentType() (*param.Value, error) {
	mt, err := getAs[component.MediaType](h, ContentType)
	if err != nil {
		return nil, err
	}
	return mt.Value, nil
}

// SetContentDisposition sets the Content-Disposition field.
func (h *Header) SetContentDisposition(kind string, meta file.Meta) {
	h.Set(ContentDisposition, component.NewDisposition(kind, meta))
}

// GetContentDisposition returns the Content-Disposition.
func (h *Header) GetContentDisposition() (component.Disposition, error) {
	return getAs[component.Disposition](h, ContentDisposition)
}

// SetTransferEncoding sets the Content-Transfer-Encoding field.
func (h *Header) SetTransferEncoding(enc transfer.Encoding) {
	h.Set(ContentTransferEncoding, component.NewTransferEncoding(enc))
}

// GetTransferEncoding returns the Content-Transfer-Encoding.
func (h *Header) GetTransferEncoding() (transfer.Encoding, error) {
	te, err := getAs[component.TransferEncoding](h, ContentTransferEncoding)
	if err != nil {
		return transfer.None, err
	}
	return te.Encoding, nil
}
