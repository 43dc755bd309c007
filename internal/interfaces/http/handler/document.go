package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/sobitas/backend/internal/application/sales"
	"github.com/sobitas/backend/internal/domain/sales"
)

// DocumentHandler handles the document API for all five document types.
// The type is carried in the :type path segment (order, ticket,
// delivery_note, vat_invoice, quotation); one handler serves them all.
type DocumentHandler struct {
	BaseHandler
	documentService *salesapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *salesapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// docType parses and validates the :type path segment
func (h *DocumentHandler) docType(c *gin.Context) (sales.DocumentType, bool) {
	docType := sales.DocumentType(c.Param("type"))
	if !docType.IsValid() {
		h.BadRequest(c, "unknown document type: "+c.Param("type"))
		return "", false
	}
	return docType, true
}

// Create issues a new document of the requested type
func (h *DocumentHandler) Create(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	var req salesapp.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.documentService.Create(c.Request.Context(), docType, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update replaces the lines and header fields of an existing document
func (h *DocumentHandler) Update(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid document ID")
		return
	}

	var req salesapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.documentService.Update(c.Request.Context(), docType, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get retrieves a document by ID
func (h *DocumentHandler) Get(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid document ID")
		return
	}

	resp, err := h.documentService.GetByID(c.Request.Context(), docType, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByNumber retrieves a document by its issued number, e.g. 2026/0042.
// The number is passed as year/sequence path segments because it contains
// a slash.
func (h *DocumentHandler) GetByNumber(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	number := c.Param("year") + "/" + c.Param("seq")
	resp, err := h.documentService.GetByNumber(c.Request.Context(), docType, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of documents of the requested type
func (h *DocumentHandler) List(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	var filter salesapp.DocumentListFilter
	filter.Page = 1
	filter.PageSize = 20
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.documentService.List(c.Request.Context(), docType, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Delete removes a document and returns its stock movements
func (h *DocumentHandler) Delete(c *gin.Context) {
	docType, ok := h.docType(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), docType, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
