package ovsdb

// MonitorRequestSelect controls which kinds of row changes a monitored
// table reports. A nil *MonitorRequestSelect (the Go zero value) is
// omitted from the wire request entirely, which OVSDB servers interpret
// as "all four kinds, default true" — this is deliberately never
// synthesized as an explicit all-true object, since an explicit object
// with some fields omitted means something different (those fields
// default to true individually, the rest take their stated value).
type MonitorRequestSelect struct {
	Initial *bool `json:"initial,omitempty"`
	Insert  *bool `json:"insert,omitempty"`
	Delete  *bool `json:"delete,omitempty"`
	Modify  *bool `json:"modify,omitempty"`
}

// MonitorRequest selects the columns and change kinds to monitor for one
// table, per RFC 7047 section 4.1.5.
type MonitorRequest struct {
	Columns []string              `json:"columns,omitempty"`
	Select  *MonitorRequestSelect `json:"select,omitempty"`
}

// Row is a decoded OVSDB row: column name to wire value. It decodes
// directly from JSON via Value's UnmarshalJSON, and is the input to
// FromMap and the output of ToMap.
type Row map[string]Value

// RowUpdate describes how a single row changed: Old holds the row's
// contents before the change (absent on insert), New holds its contents
// after (absent on delete).
type RowUpdate struct {
	Old *Row `json:"old,omitempty"`
	New *Row `json:"new,omitempty"`
}

// TableUpdate maps table name to row UUID to RowUpdate. It is both the
// initial monitor reply and the payload of every update notification.
type TableUpdate map[string]map[string]RowUpdate

// UpdateNotification is one push notification from the "update" method:
// an opaque matcher identifying which monitor it belongs to (nil when the
// server omits it) paired with the changed rows.
type UpdateNotification struct {
	ID      *string
	Message TableUpdate
}
