package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/httpresp"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
	"github.com/BruksfildServices01/event-manager/internal/optional"
	"github.com/BruksfildServices01/event-manager/internal/storage"
	"github.com/BruksfildServices01/event-manager/internal/usecase/eventdata"
)

type EventDataHandler struct {
	create *eventdata.Create
	update *eventdata.Update
	delete *eventdata.Delete
	list   *eventdata.List
}

func NewEventDataHandler(
	create *eventdata.Create,
	update *eventdata.Update,
	del *eventdata.Delete,
	list *eventdata.List,
) *EventDataHandler {
	return &EventDataHandler{
		create: create,
		update: update,
		delete: del,
		list:   list,
	}
}

// --------- Requests ---------

type CreateEventDataRequest struct {
	EventID          string          `json:"eventId"`
	EventAttributeID string          `json:"eventAttributeId"`
	Data             json.RawMessage `json:"data"`
	Comment          *string         `json:"comment"`
}

type UpdateEventDataRequest struct {
	Data     json.RawMessage        `json:"data"`
	Comment  optional.Field[string] `json:"comment"`
	ImageURL optional.Field[string] `json:"imageUrl"`
}

const imageField = "image"

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}

// formImage opens the optional image part. The returned closer is never nil.
func formImage(c *gin.Context) (*storage.Upload, func(), error) {
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, httperr.ErrValidation("invalid_upload", err.Error())
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*storage.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

// --------- Handlers ---------

func (h *EventDataHandler) ByAttribute(c *gin.Context) {
	rows, err := h.list.ByAttribute(c.Request.Context(), middleware.CurrentUser(c), c.Param("attributeId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, rows)
}

func (h *EventDataHandler) ByEvent(c *gin.Context) {
	rows, err := h.list.ByEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, rows)
}

// Create accepts a JSON body or a multipart form with an optional image.
func (h *EventDataHandler) Create(c *gin.Context) {
	in := eventdata.CreateInput{User: middleware.CurrentUser(c)}
	var rawData []byte

	if isMultipart(c) {
		in.EventID = c.PostForm("eventId")
		in.EventAttributeID = c.PostForm("eventAttributeId")
		rawData = []byte(c.PostForm("data"))
		if comment, ok := c.GetPostForm("comment"); ok {
			in.Comment = &comment
		}

		img, closeImg, err := formImage(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		defer closeImg()
		in.Image = img
	} else {
		var req CreateEventDataRequest
		if !bindJSON(c, &req) {
			return
		}
		in.EventID = req.EventID
		in.EventAttributeID = req.EventAttributeID
		in.Comment = req.Comment
		rawData = req.Data
	}

	data, err := decodeData(rawData)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	in.Data = datatypes.JSON(data)

	view, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, view)
}

func (h *EventDataHandler) Update(c *gin.Context) {
	in := eventdata.UpdateInput{
		User: middleware.CurrentUser(c),
		ID:   c.Param("id"),
	}
	var rawData []byte

	if isMultipart(c) {
		rawData = []byte(c.PostForm("data"))
		if comment, ok := c.GetPostForm("comment"); ok {
			in.Comment = optional.Of(comment)
		}
		in.ClearImage, _ = strconv.ParseBool(c.PostForm("removeImage"))

		img, closeImg, err := formImage(c)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		defer closeImg()
		in.Image = img
	} else {
		var req UpdateEventDataRequest
		if !bindJSON(c, &req) {
			return
		}
		rawData = req.Data
		in.Comment = req.Comment
		in.ClearImage = req.ImageURL.Set && req.ImageURL.Null
	}

	data, err := decodeData(rawData)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if data != nil {
		in.Data = datatypes.JSON(data)
	}

	view, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *EventDataHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, "entry deleted")
}
