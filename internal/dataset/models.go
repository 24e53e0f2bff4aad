package dataset

// ImageRecord is one row of the photograph metadata file
type ImageRecord struct {
	EntryID     string `json:"entry_id" yaml:"entry_id" parquet:"Entry_ID"` // Primary key
	Title       string `json:"title" yaml:"title" parquet:"Title"`
	Description string `json:"description" yaml:"description" parquet:"Description"`
	ImageURL    string `json:"image_url" yaml:"image_url" parquet:"Image_url"`
}

// Dataset is the read-only table of image records, kept in file order and
// indexed by entry ID. It is built once by the Loader and never mutated.
type Dataset struct {
	records []ImageRecord
	byID    map[string]int
}

// New builds a Dataset from records. Duplicate IDs are kept in order, but
// only the first occurrence is reachable through Lookup.
func New(records []ImageRecord) *Dataset {
	ds := &Dataset{
		records: make([]ImageRecord, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(ds.records, records)
	for i, r := range ds.records {
		if _, exists := ds.byID[r.EntryID]; !exists {
			ds.byID[r.EntryID] = i
		}
	}
	return ds
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all records in file order
func (d *Dataset) Records() []ImageRecord {
	return d.Head(d.Len())
}

// Head returns a copy of the first n records (fewer if the dataset is smaller)
func (d *Dataset) Head(n int) []ImageRecord {
	if d == nil || n <= 0 {
		return []ImageRecord{}
	}
	if n > len(d.records) {
		n = len(d.records)
	}
	out := make([]ImageRecord, n)
	copy(out, d.records[:n])
	return out
}

// Lookup returns the record for an entry ID
func (d *Dataset) Lookup(id string) (ImageRecord, bool) {
	if d == nil {
		return ImageRecord{}, false
	}
	i, ok := d.byID[id]
	if !ok {
		return ImageRecord{}, false
	}
	return d.records[i], true
}
