package tabular

// Column describes one fraud_data column.
type Column struct {
	Name string
	Type string
}

// Schema is the fixed column set of the fraud_data table, in storage order.
// The store does not validate query column names against it; unknown
// columns surface through the fail-soft path.
var Schema = []Column{
	{Name: "trans_date_trans_time", Type: "TEXT"},
	{Name: "cc_num", Type: "TEXT"},
	{Name: "merchant", Type: "TEXT"},
	{Name: "category", Type: "TEXT"},
	{Name: "amt", Type: "REAL"},
	{Name: "first", Type: "TEXT"},
	{Name: "last", Type: "TEXT"},
	{Name: "gender", Type: "TEXT"},
	{Name: "street", Type: "TEXT"},
	{Name: "city", Type: "TEXT"},
	{Name: "state", Type: "TEXT"},
	{Name: "zip", Type: "TEXT"},
	{Name: "lat", Type: "REAL"},
	{Name: "long", Type: "REAL"},
	{Name: "city_pop", Type: "INTEGER"},
	{Name: "job", Type: "TEXT"},
	{Name: "dob", Type: "TEXT"},
	{Name: "trans_num", Type: "TEXT"},
	{Name: "unix_time", Type: "INTEGER"},
	{Name: "merch_lat", Type: "REAL"},
	{Name: "merch_long", Type: "REAL"},
	{Name: "is_fraud", Type: "INTEGER"},
}

// ColumnNames returns the schema column names in order.
func ColumnNames() []string {
	names := make([]string, len(Schema))
	for i, col := range Schema {
		names[i] = col.Name
	}
	return names
}
