package entities

// Categoria é dado de referência estático, administrado fora deste
// serviço. O domínio apenas resolve o vínculo categoria_id.
type Categoria struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
