// Package vcard serializes contacts to vCard 3.0 text for QR payloads
// and parses scanned or pasted text (vCard or JSON) back into a
// contact draft.
package vcard

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/supplykingmv/vcard/internal/domain"
)

var (
	// ErrMissingFields: parsed text lacked a name or an email, the
	// minimum for a usable contact.
	ErrMissingFields = errors.New("contact data needs at least a name and an email")
	// ErrBadFormat: input is neither a vCard block nor valid JSON.
	ErrBadFormat = errors.New("unrecognized contact data format")
)

// Encode renders a contact as a vCard 3.0 block. FN/ORG/TITLE/TEL/
// EMAIL/ADR are always emitted, empty-valued when the field is blank;
// URL and NOTE are omitted entirely when absent.
//
// Field values are written as-is: embedded ';', ':' or newlines are
// not escaped, so such values will not survive a decode round-trip.
// The QR payloads we emit come from our own validated records, which
// keeps this acceptable in practice.
func Encode(c domain.Contact) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")
	b.WriteString("FN:" + c.Name + "\n")
	b.WriteString("ORG:" + c.Company + "\n")
	b.WriteString("TITLE:" + c.Title + "\n")
	b.WriteString("TEL:" + c.Phone + "\n")
	b.WriteString("EMAIL:" + c.Email + "\n")
	b.WriteString("ADR:;;" + c.Address + ";;;;\n")
	if c.Website != "" {
		b.WriteString("URL:" + c.Website + "\n")
	}
	if c.Notes != "" {
		b.WriteString("NOTE:" + c.Notes + "\n")
	}
	b.WriteString("END:VCARD")
	return b.String()
}

// Decode parses arbitrary text into a contact draft. Text containing a
// BEGIN:VCARD marker is parsed line-wise as vCard; anything else is
// tried as a JSON object. It never panics; failures come back as
// ErrMissingFields or ErrBadFormat.
func Decode(text string) (domain.Draft, error) {
	if strings.Contains(text, "BEGIN:VCARD") {
		d := parseVCard(text)
		if d.Name == "" || d.Email == "" {
			return domain.Draft{}, ErrMissingFields
		}
		return d, nil
	}
	return parseJSON(text)
}

func parseVCard(text string) domain.Draft {
	d := domain.Draft{Category: domain.CategoryWork}
	var emails, phones []string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawKey, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value := strings.TrimSpace(rest)
		if value == "" {
			continue
		}
		// drop property parameters: "TEL;TYPE=CELL" dispatches as TEL
		key, _, _ := strings.Cut(rawKey, ";")
		switch strings.ToUpper(key) {
		case "FN":
			d.Name = value
		case "N":
			if strings.TrimSpace(d.Name) != "" {
				break
			}
			// structured name: family;given;additional;prefix;suffix
			parts := strings.Split(value, ";")
			if len(parts) >= 2 {
				first := strings.TrimSpace(parts[1])
				last := strings.TrimSpace(parts[0])
				var words []string
				for _, w := range []string{first, last} {
					if w != "" {
						words = append(words, w)
					}
				}
				d.Name = strings.Join(words, " ")
			} else {
				d.Name = strings.TrimSpace(value)
			}
		case "ORG":
			d.Company = value
		case "TITLE":
			d.Title = value
		case "EMAIL":
			emails = append(emails, value)
		case "TEL":
			phones = append(phones, value)
		case "NOTE":
			d.Notes = value
		case "URL":
			d.Website = value
		case "ADR":
			d.Address = strings.TrimSpace(strings.ReplaceAll(value, ";;", ""))
		}
	}

	// first-seen email/phone becomes the primary
	if len(emails) > 0 {
		d.Email = emails[0]
	}
	if len(phones) > 0 {
		d.Phone = phones[0]
	}
	return d
}

func parseJSON(text string) (domain.Draft, error) {
	var d domain.Draft
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return domain.Draft{}, ErrBadFormat
	}
	if d.Name == "" || d.Email == "" {
		return domain.Draft{}, ErrMissingFields
	}
	if d.Category == "" {
		d.Category = domain.CategoryWork
	}
	return d, nil
}
