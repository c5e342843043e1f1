// Package resource describes the record types the catalog front end can manage.
//
// A Resource carries everything the generic list/search/form component needs:
// the API endpoint, form fields, search filters, card layout and user-facing
// messages. Descriptors are loaded from YAML.
package resource

import "html/template"

// FieldKind selects the input control and payload encoding of a form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
)

func (k FieldKind) valid() bool {
	switch k {
	case KindText, KindTextarea, KindNumber, KindEmail, KindTel:
		return true
	}
	return false
}

// Field is one input of the create/edit form.
type Field struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label"`
	Kind        FieldKind `yaml:"type"`
	Required    bool      `yaml:"required"`
	Placeholder string    `yaml:"placeholder"`
}

// Numeric reports whether the field is sent as a JSON number.
func (f Field) Numeric() bool { return f.Kind == KindNumber }

// Filter is one search input. Param is the query parameter sent to the API,
// ElementID the DOM id of the input.
type Filter struct {
	Param       string   `yaml:"param"`
	ElementID   string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Numeric     bool     `yaml:"numeric"`
	Placeholder string   `yaml:"placeholder"`
	Options     []string `yaml:"options"`
}

// DetailKind controls how a card detail row formats its fields.
type DetailKind string

const (
	DetailText  DetailKind = "text"
	DetailMoney DetailKind = "money"
	DetailRange DetailKind = "range"
)

// Detail is one labelled row in a record card.
type Detail struct {
	Kind     DetailKind `yaml:"kind"`
	Label    string     `yaml:"label"`
	Icon     string     `yaml:"icon"`
	Fields   []string   `yaml:"fields"`
	Optional bool       `yaml:"optional"`
	Suffix   string     `yaml:"suffix"`
}

// Card maps record fields onto the list item layout.
type Card struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Body     string   `yaml:"body"`
	Details  []Detail `yaml:"details"`
	Tags     string   `yaml:"tags"`
}

// Messages are the user-facing texts of a resource page.
type Messages struct {
	Heading       string `yaml:"heading"`
	AddButton     string `yaml:"add_button"`
	CreateTitle   string `yaml:"create_title"`
	EditTitle     string `yaml:"edit_title"`
	Empty         string `yaml:"empty"`
	LoadFailed    string `yaml:"load_failed"`
	SearchFailed  string `yaml:"search_failed"`
	RecordFailed  string `yaml:"record_failed"`
	SaveFailed    string `yaml:"save_failed"`
	DeleteFailed  string `yaml:"delete_failed"`
	ConfirmDelete string `yaml:"confirm_delete"`

	EditAction   string `yaml:"edit_action"`
	DeleteAction string `yaml:"delete_action"`
	SaveAction   string `yaml:"save_action"`
	CancelAction string `yaml:"cancel_action"`
	SearchAction string `yaml:"search_action"`
	ResetAction  string `yaml:"reset_action"`
}

// Resource is the schema descriptor of one record type.
type Resource struct {
	// Name is the plural route segment, e.g. "vacancies".
	Name string `yaml:"name"`
	// Singular prefixes the form, modal and hidden id elements.
	Singular string   `yaml:"singular"`
	Title    string   `yaml:"title"`
	Endpoint string   `yaml:"endpoint"`
	Fields   []Field  `yaml:"fields"`
	Filters  []Filter `yaml:"filters"`
	Card     Card     `yaml:"card"`
	Messages Messages `yaml:"messages"`

	// Icons holds sanitized inline SVG keyed by icon name.
	Icons map[string]template.HTML `yaml:"-"`
}

// ListID is the DOM id of the list container.
func (r *Resource) ListID() string { return r.Name + "List" }

// FormID is the DOM id of the create/edit form.
func (r *Resource) FormID() string { return r.Singular + "Form" }

// ModalID is the DOM id of the modal dialog.
func (r *Resource) ModalID() string { return r.Singular + "Modal" }

// IDField is the DOM id and form key of the hidden record identifier.
func (r *Resource) IDField() string { return r.Singular + "Id" }

// Field returns the form field with the given name.
func (r *Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Icon returns the sanitized icon markup, or "" when the icon is unknown.
func (r *Resource) Icon(name string) template.HTML {
	return r.Icons[name]
}
