package config

import "os"

// writeFile is a tiny test helper so config_test stays readable.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
