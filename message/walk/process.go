// Package walk visits the parts of a mail together with their ancestry.
package walk

import "github.com/zostay/go-mailenc/message"

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a mail and its sub-parts.
//
// The Processor is given a part and the ancestry of the part. If len(parents)
// is zero, then this is the part AndProcess() was called upon, which might not
// be the top-level mail.
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Mail, parents []*message.Mail) error

// AndProcess will walk the parts tree of a mail (or a part of a mail) and call
// the given Processor function for each part found, parents before children.
// It returns nil once all parts have been processed. If the Processor function
// returns an error, it will terminate early and return that error.
func AndProcess(
	processor Processor,
	m *message.Mail,
) error {
	parents := make([]*message.Mail, 0, 10)
	return andProcess(processor, m, parents)
}

func andProcess(
	processor Processor,
	part *message.Mail,
	parents []*message.Mail,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.Children() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// AndProcessSingle is like AndProcess, but only calls the Processor for the
// parts with a single body.
func AndProcessSingle(
	processor Processor,
	m *message.Mail,
) error {
	return AndProcess(func(part *message.Mail, parents []*message.Mail) error {
		if part.IsMultipart() {
			return nil
		}
		return processor(part, parents)
	}, m)
}

// AndProcessMultipart is like AndProcess, but only calls the Processor for
// the multipart parts.
func AndProcessMultipart(
	processor Processor,
	m *message.Mail,
) error {
	return AndProcess(func(part *message.Mail, parents []*message.Mail) error {
		if !part.IsMultipart() {
			return nil
		}
		return processor(part, parents)
	}, m)
}
