package configuration

import (
	"bufio"
	"os"
	"strings"

	"collab-notifier/infrastructure/logger"
)

// LoadEnvFromFile loads KEY=VALUE pairs from the given files in order.
// Blank lines and # comments are skipped and variables already present in
// the environment are never overridden. Missing files are ignored.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		loaded := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); exists {
				continue
			}
			if err := os.Setenv(key, val); err == nil {
				loaded++
			}
		}
		_ = f.Close()
		logger.GetLogger().WithFields(map[string]interface{}{"file": p, "loaded": loaded}).Info("Loaded env file")
	}
}

func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(val), "\"'"), true
}
