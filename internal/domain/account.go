package domain

// Account representa uma conta social presente nas exportações mensais.
// Imutável depois de criada; nasce na primeira linha que referencia o seu ID.
type Account struct {
	ID          string `json:"id"`           // Identificador numérico da conta (IG ID)
	Handle      string `json:"handle"`       // Usuário da conta (ex: @loja)
	DisplayName string `json:"display_name"` // Nome de exibição da conta
}
