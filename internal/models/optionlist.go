package models

// OptionList is a named set of selectable values usable within a form field.
type OptionList struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Option is one element of an option list.
type Option struct {
	ID             int64  `json:"id,omitempty" yaml:"id,omitempty"`
	KeyValue       string `json:"key_value" yaml:"key_value"`
	Label          string `json:"label" yaml:"label"`
	SortOrder      int    `json:"sort_order" yaml:"sort_order"`
	ConditionValue string `json:"condition_value,omitempty" yaml:"condition_value,omitempty"`
}
