package tree

import (
	"strings"

	"github.com/zostay/go-mailenc/message/header"
	"github.com/zostay/go-mailenc/message/header/component"
	"github.com/zostay/go-mailenc/message/transfer"
)

// ParseField turns the text of a header field into the component its name
// calls for. Unknown fields become unstructured text.
func ParseField(name, value string) (component.Component, error) {
	if err := header.ValidateName(name); err != nil {
		return nil, err
	}

	switch strings.ToLower(name) {
	case "from":
		return component.ParseMailboxList(value)
	case "sender":
		return component.ParseMailbox(value)
	case "to", "cc", "bcc", "reply-to":
		return component.ParseAddressList(value)
	case "date":
		return component.ParseDateTime(value)
	case "message-id", "content-id":
		return component.NewMessageID(strings.TrimSpace(value)), nil
	case "in-reply-to", "references":
		ids := strings.Fields(value)
		ml := make(component.MessageIDList, len(ids))
		for i, id := range ids {
			ml[i] = component.NewMessageID(id)
		}
		return ml, nil
	case "keywords":
		var pl component.PhraseList
		for _, k := range strings.Split(value, ",") {
			if k = strings.TrimSpace(k); k != "" {
				pl = append(pl, component.NewPhrase(k))
			}
		}
		return pl, nil
	case "return-path":
		return component.NewPath(strings.Trim(strings.TrimSpace(value), "<>"))
	case "content-type":
		return component.ParseMediaType(value)
	case "content-transfer-encoding":
		return component.NewTransferEncoding(transfer.ParseEncoding(value)), nil
	}
	return component.NewUnstructured(value), nil
}
