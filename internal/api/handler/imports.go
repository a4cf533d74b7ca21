package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/social-metrics-api/internal/usecases/ingesting"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/log"
)

// maxImportBodyBytes limita o corpo do upload de exportações (32 MiB)
const maxImportBodyBytes = 32 << 20

// ImportExports recebe um lote de exportações mensais via multipart e retorna
// o resultado estruturado da ingestão. O nome de cada arquivo carrega o
// período (IG_YYYY_MM.csv); arquivos inválidos não impedem os demais.
func ImportExports(service ingesting.Ingester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := r.ParseMultipartForm(maxImportBodyBytes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo multipart inválido ou muito grande", nil)
			return
		}

		if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum arquivo enviado no campo 'files'", nil)
			return
		}

		headers := r.MultipartForm.File["files"]
		files := make([]ingesting.ExportFile, 0, len(headers))
		for _, header := range headers {
			content, err := header.Open()
			if err != nil {
				logger.WithError(err).WithField("file", header.Filename).Error("imports: erro ao abrir arquivo enviado")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler arquivo enviado", nil)
				return
			}
			defer content.Close()

			files = append(files, ingesting.ExportFile{
				Name:    header.Filename,
				Content: content,
			})
		}

		logger.WithField("files", len(files)).Info("imports: iniciando importação de lote via API")

		result, err := service.ImportFiles(r.Context(), files)
		if err != nil {
			logger.WithError(err).Error("imports: erro ao importar lote")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao importar lote de exportações", nil)
			return
		}

		logger.WithFields(log.Fields{
			"batch_id":       result.BatchID,
			"files_imported": result.FilesImported,
			"files_rejected": result.FilesRejected,
		}).Info("imports: lote processado")

		w.Header().Set("Content-Type", "application/json")
		if result.FilesRejected > 0 {
			w.WriteHeader(http.StatusMultiStatus)
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("imports: erro ao codificar resposta")
		}
	})
}
