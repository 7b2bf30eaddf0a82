package entities

// Cliente é a identidade autenticada que o domínio consome. A criação
// e a autenticação ficam com o colaborador de identidade externo; aqui
// o cliente só é referenciado por notícias e interações.
type Cliente struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
	// Único entre clientes.
	Email string `json:"email"`
	// Credencial opaca. Nunca serializada em resposta.
	Senha    string `json:"-"`
	Telefone string `json:"telefone"`
	Cidade   string `json:"cidade"`
	Admin    bool   `json:"admin"`
}
