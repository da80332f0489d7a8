// Package header provides the header of a mail as an ordered list of fields,
// each a name with a structured component.Component for its body. Fields are
// kept and written in insertion order.
//
// The low-level methods (Add, Set, Get, GetAll, Delete) work with any
// component. The typed setters and getters take care of picking the right
// component for the standard fields of RFC 5322 and RFC 2045, so a Subject is
// always component.Unstructured, a From is always a component.MailboxList,
// and so on.
package header
