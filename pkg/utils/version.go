package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"placement_dashboard/internal/config"
)

// PrintVersion 輸出版本信息，jsonFormat 為 true 時以 JSON 輸出
func PrintVersion(w io.Writer, jsonFormat bool) error {
	if !jsonFormat {
		_, err := fmt.Fprintln(w, config.ShortVersionString())
		return err
	}
	jsonData, err := json.MarshalIndent(config.GetVersion(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal version: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
