package config

func defaultBackend() string {
	return BackendWindows
}
