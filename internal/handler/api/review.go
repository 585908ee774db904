package api

import (
	"net/http"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Create review
// @Description Review a completed booking. The resource rating is updated in the same transaction.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReviewRequest true "Create review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reqdto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.CreateReview(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateReviewResult(result))
}

// @Summary List resource reviews
// @Description Newest first, keyset paginated.
// @Tags reviews
// @Produce json
// @Param id path string true "Resource ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/reviews [get]
func (h *ReviewHandler) ListByResource(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	items, next, err := h.q.ListByResource(c.Request.Context(), resourceID, queryCursor(c), limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	reviews, err := resdto.FromReviewList(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ReviewListResponse{
		Reviews:    reviews,
		NextCursor: nextCursor(next),
	})
}

// @Summary Resource rating
// @Tags reviews
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.RatingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/rating [get]
func (h *ReviewHandler) ResourceRating(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rating, err := h.q.ResourceRating(c.Request.Context(), resourceID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromResourceRating(rating)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
