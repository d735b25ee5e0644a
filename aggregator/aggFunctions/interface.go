package aggfunctions

type AggConfig struct {
	Col  string `json:"col" mapstructure:"col"`
	Func string `json:"func" mapstructure:"func"`
}

// Aggregation folds the values of one column within a group. Null (nil)
// values are ignored by every implementation.
type Aggregation interface {
	Add(value interface{}) Aggregation
	Result() interface{}
}

func GetTypeOfAgg(funcName string) string {
	switch funcName {
	case "sum", "mean":
		return "float64"
	case "count", "nunique":
		return "int"
	default:
		return "unknown"
	}
}
