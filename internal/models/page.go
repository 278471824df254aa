package models

// Page is a data collection form definition.
type Page struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Label        string `json:"label" yaml:"label"`
	Version      string `json:"version,omitempty" yaml:"version,omitempty"`
	CreatedDate  string `json:"created_date,omitempty" yaml:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date,omitempty" yaml:"modified_date,omitempty"`
}

// PageElement is a single field on a page.
type PageElement struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Label        string `json:"label" yaml:"label"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	DataType     int    `json:"data_type" yaml:"data_type"`
	DataSize     int    `json:"data_size,omitempty" yaml:"data_size,omitempty"`
	SortOrder    int    `json:"sort_order" yaml:"sort_order"`
	OptionListID int64  `json:"optionlist_id,omitempty" yaml:"optionlist_id,omitempty"`
}
