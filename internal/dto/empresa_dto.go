package dto

type AtualizarEmpresaRequest struct {
	Nome         string  `json:"nome" validate:"required"`
	CNPJ         *string `json:"cnpj"`
	Endereco     *string `json:"endereco"`
	Telefone     *string `json:"telefone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Site         *string `json:"site"`
	LogotipoPath *string `json:"logotipo_path"`
}

type EmpresaResponse struct {
	ID           string  `json:"id"`
	Nome         string  `json:"nome"`
	CNPJ         *string `json:"cnpj,omitempty"`
	Endereco     *string `json:"endereco,omitempty"`
	Telefone     *string `json:"telefone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Site         *string `json:"site,omitempty"`
	LogotipoPath *string `json:"logotipo_path,omitempty"`
}
