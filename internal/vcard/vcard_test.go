package vcard

import (
	"errors"
	"strings"
	"testing"

	"github.com/supplykingmv/vcard/internal/domain"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name        string
		contact     domain.Contact
		wantLines   []string
		absentLines []string
	}{
		{
			name: "full card without website or notes",
			contact: domain.Contact{
				Name:    "Ada Lovelace",
				Company: "Analytical Engines",
				Title:   "Mathematician",
				Phone:   "+44 20 1234",
				Email:   "ada@example.com",
				Address: "1 Babbage Rd",
			},
			wantLines: []string{
				"BEGIN:VCARD",
				"VERSION:3.0",
				"FN:Ada Lovelace",
				"ORG:Analytical Engines",
				"TITLE:Mathematician",
				"TEL:+44 20 1234",
				"EMAIL:ada@example.com",
				"ADR:;;1 Babbage Rd;;;;",
				"END:VCARD",
			},
			absentLines: []string{"URL:", "NOTE:"},
		},
		{
			name: "website and notes included when set",
			contact: domain.Contact{
				Name:    "Grace Hopper",
				Email:   "grace@example.com",
				Website: "https://grace.example.com",
				Notes:   "Met at conference",
			},
			wantLines: []string{
				"FN:Grace Hopper",
				"URL:https://grace.example.com",
				"NOTE:Met at conference",
			},
		},
		{
			name:    "blank fields still emit their lines",
			contact: domain.Contact{Name: "Min", Email: "min@x.com"},
			wantLines: []string{
				"ORG:",
				"TITLE:",
				"TEL:",
				"ADR:;;;;;;",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.contact)
			lines := strings.Split(got, "\n")
			has := func(want string) bool {
				for _, l := range lines {
					if l == want {
						return true
					}
				}
				return false
			}
			for _, want := range tt.wantLines {
				if !has(want) {
					t.Errorf("missing line %q in:\n%s", want, got)
				}
			}
			for _, prefix := range tt.absentLines {
				for _, l := range lines {
					if strings.HasPrefix(l, prefix) {
						t.Errorf("unexpected line %q", l)
					}
				}
			}
			if !strings.HasSuffix(got, "END:VCARD") {
				t.Error("output must end with END:VCARD and no trailing newline")
			}
		})
	}
}

func TestDecodeVCard(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    domain.Draft
		wantErr error
	}{
		{
			name: "minimal card",
			text: "BEGIN:VCARD\nVERSION:3.0\nFN:Grace Hopper\nEMAIL:grace@example.com\nEND:VCARD",
			want: domain.Draft{Name: "Grace Hopper", Email: "grace@example.com", Category: domain.CategoryWork},
		},
		{
			name: "structured name fallback when FN absent",
			text: "BEGIN:VCARD\nN:Hopper;Grace;;;\nEMAIL:grace@example.com\nEND:VCARD",
			want: domain.Draft{Name: "Grace Hopper", Email: "grace@example.com", Category: domain.CategoryWork},
		},
		{
			name: "FN wins over N regardless of order",
			text: "BEGIN:VCARD\nFN:Rear Admiral Hopper\nN:Hopper;Grace;;;\nEMAIL:grace@example.com\nEND:VCARD",
			want: domain.Draft{Name: "Rear Admiral Hopper", Email: "grace@example.com", Category: domain.CategoryWork},
		},
		{
			name: "first email and phone become primary",
			text: "BEGIN:VCARD\nFN:A B\nEMAIL:first@x.com\nEMAIL:second@x.com\nTEL:111\nTEL:222\nEND:VCARD",
			want: domain.Draft{Name: "A B", Email: "first@x.com", Phone: "111", Category: domain.CategoryWork},
		},
		{
			name: "property parameters are stripped",
			text: "BEGIN:VCARD\nFN:A B\nEMAIL;TYPE=WORK:a@x.com\nTEL;TYPE=CELL:555\nEND:VCARD",
			want: domain.Draft{Name: "A B", Email: "a@x.com", Phone: "555", Category: domain.CategoryWork},
		},
		{
			name: "address separators removed",
			text: "BEGIN:VCARD\nFN:A B\nEMAIL:a@x.com\nADR:;;1 Babbage Rd;;;;\nEND:VCARD",
			want: domain.Draft{Name: "A B", Email: "a@x.com", Address: "1 Babbage Rd", Category: domain.CategoryWork},
		},
		{
			name: "all optional fields",
			text: "BEGIN:VCARD\nFN:A B\nORG:Acme\nTITLE:CEO\nEMAIL:a@x.com\nURL:https://a.example\nNOTE:hi\nEND:VCARD",
			want: domain.Draft{
				Name: "A B", Company: "Acme", Title: "CEO", Email: "a@x.com",
				Website: "https://a.example", Notes: "hi", Category: domain.CategoryWork,
			},
		},
		{
			name:    "missing email rejected",
			text:    "BEGIN:VCARD\nFN:Nameless\nEND:VCARD",
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing name rejected",
			text:    "BEGIN:VCARD\nEMAIL:a@x.com\nEND:VCARD",
			wantErr: ErrMissingFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    domain.Draft
		wantErr error
	}{
		{
			name: "full object",
			text: `{"name":"Ada","email":"ada@x.com","company":"AE","category":"Personal"}`,
			want: domain.Draft{Name: "Ada", Email: "ada@x.com", Company: "AE", Category: domain.CategoryPersonal},
		},
		{
			name: "category defaults to work",
			text: `{"name":"Ada","email":"ada@x.com"}`,
			want: domain.Draft{Name: "Ada", Email: "ada@x.com", Category: domain.CategoryWork},
		},
		{
			name:    "missing required fields",
			text:    `{"name":"Ada"}`,
			wantErr: ErrMissingFields,
		},
		{
			name:    "garbage input",
			text:    "not json and not a vcard",
			wantErr: ErrBadFormat,
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: ErrBadFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Values are written unescaped, so delimiter characters do not survive
// a round trip. These cases pin down exactly what gets lost.
func TestRoundTripUnescapedDelimiters(t *testing.T) {
	tests := []struct {
		name    string
		contact domain.Contact
		check   func(t *testing.T, got domain.Draft)
	}{
		{
			name: "newline in notes keeps only the first line",
			contact: domain.Contact{
				Name:  "Ada",
				Email: "ada@x.com",
				Notes: "line one\nline two",
			},
			check: func(t *testing.T, got domain.Draft) {
				if got.Notes != "line one" {
					t.Errorf("notes = %q, want truncation to %q", got.Notes, "line one")
				}
			},
		},
		{
			name: "semicolon pairs in address are stripped",
			contact: domain.Contact{
				Name:    "Ada",
				Email:   "ada@x.com",
				Address: "Suite 1;; Block 2",
			},
			check: func(t *testing.T, got domain.Draft) {
				if got.Address != "Suite 1 Block 2" {
					t.Errorf("address = %q, want %q", got.Address, "Suite 1 Block 2")
				}
			},
		},
		{
			name: "newline in a value can leak a bogus property",
			contact: domain.Contact{
				Name:  "Ada",
				Email: "ada@x.com",
				Notes: "call me\nTEL:999",
			},
			check: func(t *testing.T, got domain.Draft) {
				if got.Phone != "999" {
					t.Errorf("phone = %q, want the injected line parsed as TEL", got.Phone)
				}
			},
		},
		{
			name: "colon inside a value survives",
			contact: domain.Contact{
				Name:  "Ada",
				Email: "ada@x.com",
				Notes: "ratio 1:2",
			},
			check: func(t *testing.T, got domain.Draft) {
				if got.Notes != "ratio 1:2" {
					t.Errorf("notes = %q, colon after the first must be kept", got.Notes)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.contact))
			if err != nil {
				t.Fatalf("decode own output: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := domain.Contact{
		Name:    "Ada Lovelace",
		Company: "Analytical Engines",
		Title:   "Mathematician",
		Phone:   "+44 20 1234",
		Email:   "ada@example.com",
		Website: "https://ada.example.com",
		Address: "1 Babbage Rd",
		Notes:   "First programmer",
	}
	got, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("decode own output: %v", err)
	}
	want := domain.Draft{
		Name:     in.Name,
		Company:  in.Company,
		Title:    in.Title,
		Phone:    in.Phone,
		Email:    in.Email,
		Website:  in.Website,
		Address:  in.Address,
		Notes:    in.Notes,
		Category: domain.CategoryWork,
	}
	if got != want {
		t.Errorf("round trip changed data:\ngot  %+v\nwant %+v", got, want)
	}
}
