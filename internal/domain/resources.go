package domain

// APIKey представляет API ключ команды
type APIKey struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Key       string `json:"key,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Sandbox представляет запущенное окружение, как его возвращает backend
type Sandbox struct {
	Alias       string         `json:"alias"`
	ClientID    string         `json:"clientID"`
	CPUCount    int            `json:"cpuCount"`
	DiskSizeMB  int            `json:"diskSizeMB"`
	EndAt       string         `json:"endAt"`
	EnvdVersion string         `json:"envdVersion"`
	MemoryMB    int            `json:"memoryMB"`
	Metadata    map[string]any `json:"metadata"`
	SandboxID   string         `json:"sandboxID"`
	StartedAt   string         `json:"startedAt"`
	State       string         `json:"state"`
	TemplateID  string         `json:"templateID"`
}

// Template представляет шаблон окружения
type Template struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Public   bool   `json:"public,omitempty"`
}
