package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "kaskos.v1.LedgerService"

const (
	LedgerServiceRecordContributionProcedure = "/kaskos.v1.LedgerService/RecordContribution"
	LedgerServiceRecordExpenditureProcedure  = "/kaskos.v1.LedgerService/RecordExpenditure"
	LedgerServiceListContributionsProcedure  = "/kaskos.v1.LedgerService/ListContributions"
	LedgerServiceListExpendituresProcedure   = "/kaskos.v1.LedgerService/ListExpenditures"
	LedgerServiceListMembersProcedure        = "/kaskos.v1.LedgerService/ListMembers"
	LedgerServiceGetReportProcedure          = "/kaskos.v1.LedgerService/GetReport"
)

// LedgerServiceClient is a client for the kaskos.v1.LedgerService service.
type LedgerServiceClient interface {
	RecordContribution(context.Context, *connect.Request[api.RecordContributionRequest]) (*connect.Response[api.RecordContributionResponse], error)
	RecordExpenditure(context.Context, *connect.Request[api.RecordExpenditureRequest]) (*connect.Response[api.RecordExpenditureResponse], error)
	ListContributions(context.Context, *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error)
	ListExpenditures(context.Context, *connect.Request[api.ListExpendituresRequest]) (*connect.Response[api.ListExpendituresResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	GetReport(context.Context, *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error)
}

// NewLedgerServiceClient constructs a client for the kaskos.v1.LedgerService service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	clientOpts := append([]connect.ClientOption{codecOption()}, opts...)
	return &ledgerServiceClient{
		recordContribution: connect.NewClient[api.RecordContributionRequest, api.RecordContributionResponse](httpClient, baseURL+LedgerServiceRecordContributionProcedure, clientOpts...),
		recordExpenditure:  connect.NewClient[api.RecordExpenditureRequest, api.RecordExpenditureResponse](httpClient, baseURL+LedgerServiceRecordExpenditureProcedure, clientOpts...),
		listContributions:  connect.NewClient[api.ListContributionsRequest, api.ListContributionsResponse](httpClient, baseURL+LedgerServiceListContributionsProcedure, clientOpts...),
		listExpenditures:   connect.NewClient[api.ListExpendituresRequest, api.ListExpendituresResponse](httpClient, baseURL+LedgerServiceListExpendituresProcedure, clientOpts...),
		listMembers:        connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+LedgerServiceListMembersProcedure, clientOpts...),
		getReport:          connect.NewClient[api.GetReportRequest, api.GetReportResponse](httpClient, baseURL+LedgerServiceGetReportProcedure, clientOpts...),
	}
}

type ledgerServiceClient struct {
	recordContribution *connect.Client[api.RecordContributionRequest, api.RecordContributionResponse]
	recordExpenditure  *connect.Client[api.RecordExpenditureRequest, api.RecordExpenditureResponse]
	listContributions  *connect.Client[api.ListContributionsRequest, api.ListContributionsResponse]
	listExpenditures   *connect.Client[api.ListExpendituresRequest, api.ListExpendituresResponse]
	listMembers        *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	getReport          *connect.Client[api.GetReportRequest, api.GetReportResponse]
}

func (c *ledgerServiceClient) RecordContribution(ctx context.Context, req *connect.Request[api.RecordContributionRequest]) (*connect.Response[api.RecordContributionResponse], error) {
	return c.recordContribution.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordExpenditure(ctx context.Context, req *connect.Request[api.RecordExpenditureRequest]) (*connect.Response[api.RecordExpenditureResponse], error) {
	return c.recordExpenditure.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListContributions(ctx context.Context, req *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error) {
	return c.listContributions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenditures(ctx context.Context, req *connect.Request[api.ListExpendituresRequest]) (*connect.Response[api.ListExpendituresResponse], error) {
	return c.listExpenditures.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the kaskos.v1.LedgerService service.
type LedgerServiceHandler interface {
	RecordContribution(context.Context, *connect.Request[api.RecordContributionRequest]) (*connect.Response[api.RecordContributionResponse], error)
	RecordExpenditure(context.Context, *connect.Request[api.RecordExpenditureRequest]) (*connect.Response[api.RecordExpenditureResponse], error)
	ListContributions(context.Context, *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error)
	ListExpenditures(context.Context, *connect.Request[api.ListExpendituresRequest]) (*connect.Response[api.ListExpendituresResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	GetReport(context.Context, *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	handlerOpts := append([]connect.HandlerOption{codecOption()}, opts...)
	recordContributionHandler := connect.NewUnaryHandler(LedgerServiceRecordContributionProcedure, svc.RecordContribution, handlerOpts...)
	recordExpenditureHandler := connect.NewUnaryHandler(LedgerServiceRecordExpenditureProcedure, svc.RecordExpenditure, handlerOpts...)
	listContributionsHandler := connect.NewUnaryHandler(LedgerServiceListContributionsProcedure, svc.ListContributions, handlerOpts...)
	listExpendituresHandler := connect.NewUnaryHandler(LedgerServiceListExpendituresProcedure, svc.ListExpenditures, handlerOpts...)
	listMembersHandler := connect.NewUnaryHandler(LedgerServiceListMembersProcedure, svc.ListMembers, handlerOpts...)
	getReportHandler := connect.NewUnaryHandler(LedgerServiceGetReportProcedure, svc.GetReport, handlerOpts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceRecordContributionProcedure:
			recordContributionHandler.ServeHTTP(w, r)
		case LedgerServiceRecordExpenditureProcedure:
			recordExpenditureHandler.ServeHTTP(w, r)
		case LedgerServiceListContributionsProcedure:
			listContributionsHandler.ServeHTTP(w, r)
		case LedgerServiceListExpendituresProcedure:
			listExpendituresHandler.ServeHTTP(w, r)
		case LedgerServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case LedgerServiceGetReportProcedure:
			getReportHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
