package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	gqlschema "blogql/internal/graphql"
)

type GraphQLHandler struct {
	schema graphql.Schema
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// Execute runs one GraphQL query/mutation. Application errors raised by the
// resolvers are reshaped to {message, status, data}; engine errors (malformed
// queries) pass through in the engine's own shape.
func (h *GraphQLHandler) Execute(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload."})
		return
	}

	recorder := gqlschema.NewRecorder()
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        gqlschema.WithRecorder(c.Request.Context(), recorder),
	})

	c.JSON(http.StatusOK, formatResult(result, recorder))
}

func formatResult(result *graphql.Result, recorder *gqlschema.Recorder) gin.H {
	out := gin.H{"data": result.Data}
	if len(result.Errors) == 0 {
		return out
	}

	formatted := make([]interface{}, 0, len(result.Errors))
	for _, gqlErr := range result.Errors {
		appErr := recorder.Take(gqlErr.Message)
		if appErr == nil {
			formatted = append(formatted, gqlErr)
			continue
		}
		entry := gin.H{
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if len(appErr.Details) > 0 {
			entry["data"] = appErr.Details
		}
		formatted = append(formatted, entry)
	}
	out["errors"] = formatted
	return out
}
