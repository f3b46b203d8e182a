package apihandlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/gorilla/mux"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/queries"
	"github.com/the127/osmhistory/internal/utils/apiError"
	"github.com/the127/osmhistory/internal/utils/pointer"
)

type ListVersionsResponse struct {
	Items []ListVersionsResponseItem `json:"items"`
}

type ListVersionsResponseItem struct {
	Id        int64             `json:"id"`
	Version   int               `json:"version"`
	Changeset int64             `json:"changeset"`
	Uid       int64             `json:"uid"`
	User      string            `json:"user"`
	Tags      map[string]string `json:"tags"`
	ValidFrom time.Time         `json:"validFrom"`
	ValidTo   *time.Time        `json:"validTo"`
	Geometry  string            `json:"geometry,omitempty"`
	NodeRefs  []int64           `json:"nodeRefs,omitempty"`
	Members   []entities.Member `json:"members,omitempty"`
}

func ListVersions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		apiError.HandleHttpError(w, fmt.Errorf("invalid id %q: %w", vars["id"], apiError.ErrApiBadRequest))
		return
	}

	var at *time.Time
	if value := r.URL.Query().Get("at"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			apiError.HandleHttpError(w, fmt.Errorf("invalid timestamp %q: %w", value, apiError.ErrApiBadRequest))
			return
		}
		at = pointer.To(parsed)
	}

	ctx := r.Context()
	scope := middlewares.GetScope(ctx)
	mediator := ioc.GetDependency[mediatr.Mediator](scope)

	versions, err := mediatr.Send[*queries.ListEntityVersionsResponse](ctx, mediator, queries.ListEntityVersions{
		Type: queries.EntityType(vars["type"]),
		Id:   id,
		At:   at,
	})
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	response := ListVersionsResponse{
		Items: make([]ListVersionsResponseItem, 0, len(versions.Items)),
	}
	for _, version := range versions.Items {
		response.Items = append(response.Items, ListVersionsResponseItem{
			Id:        version.Id,
			Version:   version.Version,
			Changeset: version.Changeset,
			Uid:       version.Uid,
			User:      version.User,
			Tags:      version.Tags,
			ValidFrom: version.ValidFrom,
			ValidTo:   version.ValidTo,
			Geometry:  version.Geometry,
			NodeRefs:  version.NodeRefs,
			Members:   version.Members,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}
}
