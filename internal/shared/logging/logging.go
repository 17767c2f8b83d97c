// Package logging builds the process logger. Production gets the JSON
// info-level config; everything else the human-readable development one.
package logging

import "go.uber.org/zap"

func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
