package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Krritin/Tripiza/internal/itinerary"
	"github.com/Krritin/Tripiza/internal/models"
)

type createItineraryRequest struct {
	TripName  string `json:"tripName" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type updateItineraryRequest struct {
	TripName  string       `json:"tripName" binding:"required"`
	StartDate string       `json:"startDate" binding:"required"`
	EndDate   string       `json:"endDate" binding:"required"`
	Days      []models.Day `json:"days"`
}

type addActivityRequest struct {
	Time     string `json:"time" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Location string `json:"location" binding:"required"`
	Notes    string `json:"notes"`
}

func ListItineraries(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/itinerary"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		itineraries, err := svc.List(ctx, ownerID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		views := make([]models.Itinerary, 0, len(itineraries))
		for _, it := range itineraries {
			views = append(views, itinerary.SortedView(it))
		}
		c.JSON(http.StatusOK, views)
	}
}

func GetItinerary(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/itinerary/:id"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := itineraryID(c)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.Get(ctx, ownerID, id)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, itinerary.SortedView(*it))
	}
}

// GetSharedItinerary is the public read-only view: no auth, lookup purely by
// share token.
func GetSharedItinerary(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/itinerary/share/:uuid"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.GetShared(ctx, c.Param("uuid"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, itinerary.SortedView(*it))
	}
}

func CreateItinerary(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/itinerary"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req createItineraryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.Create(ctx, ownerID, itinerary.CreateInput{
			TripName:  req.TripName,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ITINERARY] [INFO] itinerary created:", it.ID.Hex())
		c.JSON(http.StatusCreated, itinerary.SortedView(*it))
	}
}

func UpdateItinerary(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/itinerary/:id"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := itineraryID(c)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
			return
		}

		var req updateItineraryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.Replace(ctx, ownerID, id, itinerary.ReplaceInput{
			TripName:  req.TripName,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Days:      req.Days,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ITINERARY] [INFO] itinerary updated:", it.ID.Hex())
		c.JSON(http.StatusOK, itinerary.SortedView(*it))
	}
}

func DeleteItinerary(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/itinerary/:id"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := itineraryID(c)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := svc.Delete(ctx, ownerID, id); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ITINERARY] [INFO] itinerary deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Itinerary deleted successfully"})
	}
}

func AddActivity(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/itinerary/:id/day/:dayNumber/activity"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := itineraryID(c)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
			return
		}

		dayNumber, err := strconv.Atoi(strings.TrimSpace(c.Param("dayNumber")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid day number")
			return
		}

		var req addActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.AppendActivity(ctx, ownerID, id, dayNumber, itinerary.ActivityInput{
			Time:     req.Time,
			Title:    req.Title,
			Location: req.Location,
			Notes:    req.Notes,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ITINERARY] [INFO] activity added to itinerary:", it.ID.Hex())
		c.JSON(http.StatusOK, itinerary.SortedView(*it))
	}
}

func RemoveActivity(svc *itinerary.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/itinerary/:id/day/:dayNumber/activity/:activityId"
		defer handlePanic(c, route)

		ownerID, ok := currentUserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		id, err := itineraryID(c)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
			return
		}

		dayNumber, err := strconv.Atoi(strings.TrimSpace(c.Param("dayNumber")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid day number")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		it, err := svc.RemoveActivity(ctx, ownerID, id, dayNumber, c.Param("activityId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[ITINERARY] [INFO] activity removed from itinerary:", it.ID.Hex())
		c.JSON(http.StatusOK, itinerary.SortedView(*it))
	}
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// itineraryID parses the :id route param. A malformed id is reported as not
// found, same as an unknown one.
func itineraryID(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
}

func respondServiceError(c *gin.Context, route string, err error) {
	var validationErr *itinerary.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(c, http.StatusBadRequest, route, validationErr.Message)
	case errors.Is(err, itinerary.ErrDayNotFound):
		respondWithError(c, http.StatusNotFound, route, "Day not found")
	case errors.Is(err, itinerary.ErrActivityNotFound):
		respondWithError(c, http.StatusNotFound, route, "Activity not found")
	case errors.Is(err, itinerary.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, "Itinerary not found")
	default:
		log.Printf("[%s] store error: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "server error")
	}
}
