package config

// LabelFormat controls how scanner identifiers appear in output.
type LabelFormat string

const (
	LabelFormatName     LabelFormat = "name"     // "functions"
	LabelFormatID       LabelFormat = "id"       // "SCN001"
	LabelFormatCombined LabelFormat = "combined" // "SCN001/functions"
)

// FormatScannerID formats a scanner identifier based on the given format.
// Falls back to ID if name is empty.
func FormatScannerID(format LabelFormat, scannerID, scannerName string) string {
	if scannerName == "" {
		return scannerID
	}

	switch format {
	case LabelFormatID:
		return scannerID
	case LabelFormatName:
		return scannerName
	case LabelFormatCombined:
		return scannerID + "/" + scannerName
	default:
		return scannerID + "/" + scannerName
	}
}
