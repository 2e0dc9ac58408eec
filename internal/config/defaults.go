package config

import "embed"

//go:embed defaults/*.yaml
var defaultFS embed.FS

const defaultDir = "defaults"
