package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/blobstore"
	"ehealth-portal-server/internal/utils"
)

// maxAttachmentBytes caps uploaded attachment size.
const maxAttachmentBytes = 10 << 20 // 10 MiB

// MessageHandler handles message and attachment endpoints.
type MessageHandler struct {
	Chat  ChatService
	Blobs blobstore.Store
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(chatSvc ChatService, blobs blobstore.Store) *MessageHandler {
	return &MessageHandler{Chat: chatSvc, Blobs: blobs}
}

// PostMessageBody represents the request body for sending a message.
type PostMessageBody struct {
	Body string `json:"body" binding:"required"`
}

// PostMessage appends a text message to a thread the caller participates in.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}
	var body PostMessageBody
	if !utils.BindAndValidate(c, &body) {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}

	msg, err := h.Chat.PostMessage(c.Request.Context(), id, a.Name, a.Role, body.Body)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Created(c, "Message sent successfully", msg)
}

// UploadAttachment stores the uploaded file in the blob store and records it
// on the thread's timeline.
func (h *MessageHandler) UploadAttachment(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	req, err := h.Chat.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Missing file upload: "+err.Error())
		return
	}
	if fileHeader.Size > maxAttachmentBytes {
		utils.BadRequest(c, "File exceeds the 10 MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequest(c, "Failed to read uploaded file: "+err.Error())
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes+1))
	if err != nil {
		utils.BadRequest(c, "Failed to read uploaded file: "+err.Error())
		return
	}
	if len(data) > maxAttachmentBytes {
		utils.BadRequest(c, "File exceeds the 10 MB limit")
		return
	}

	locator, err := h.Blobs.Put(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		utils.BadGateway(c, "File storage is unavailable. Try again later.")
		return
	}

	att, err := h.Chat.PostAttachment(c.Request.Context(), id, a.Name, a.Role, fileHeader.Filename, locator)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Created(c, "Attachment uploaded successfully", att)
}

// DownloadAttachment streams the bytes of an attachment the caller is
// allowed to see.
func (h *MessageHandler) DownloadAttachment(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	attID, err := strconv.ParseUint(c.Param("attachmentId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid attachment ID format")
		return
	}

	att, err := h.Chat.Attachment(c.Request.Context(), uint(attID))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	req, err := h.Chat.GetRequest(c.Request.Context(), att.RequestID)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !canAccessRequest(req, a) {
		utils.Forbidden(c, "You are not a participant of this request")
		return
	}

	data, err := h.Blobs.Get(c.Request.Context(), att.Locator)
	if err != nil {
		utils.BadGateway(c, "File storage is unavailable. Try again later.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+att.FileName+`"`)
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
