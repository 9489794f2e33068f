package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/scout"
)

// Diagnostic turns an error into the sentence returned to the agent.
func Diagnostic(err error) string {
	var (
		noData   *scout.NoDataError
		badStat  *scout.UnknownStatError
		badTeam  *scout.UnknownTeamError
		badArgs  *ArgumentError
		badTool  *UnknownToolError
		storeErr *scout.StoreError
	)
	switch {
	case errors.As(err, &noData):
		return noData.Message
	case errors.As(err, &badStat):
		if len(badStat.Stats) == 1 {
			return fmt.Sprintf("Invalid stat '%s'. Please use a supported statistic.", badStat.Stats[0])
		}
		return fmt.Sprintf("Invalid stat(s) provided: %s.", strings.Join(badStat.Stats, ", "))
	case errors.As(err, &badTeam):
		return fmt.Sprintf("Could not find the team '%s'.", badTeam.Team)
	case errors.As(err, &badTool):
		return fmt.Sprintf("Unknown tool '%s'.", badTool.Name)
	case errors.As(err, &badArgs):
		return fmt.Sprintf("Invalid arguments: %v.", badArgs.Err)
	case errors.Is(err, scout.ErrInvalidRequest):
		return fmt.Sprintf("Invalid arguments: %s.", strings.TrimPrefix(err.Error(), scout.ErrInvalidRequest.Error()+": "))
	case errors.As(err, &storeErr):
		return fmt.Sprintf("An error occurred: %v", storeErr.Err)
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
