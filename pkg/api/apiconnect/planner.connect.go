package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/planbuddy/pkg/api"
)

const (
	// PlannerServiceName is the fully-qualified name of the PlannerService service.
	PlannerServiceName = "planbuddy.v1.PlannerService"
)

const (
	PlannerServiceCreatePlanProcedure                = "/planbuddy.v1.PlannerService/CreatePlan"
	PlannerServiceGetPlanProcedure                   = "/planbuddy.v1.PlannerService/GetPlan"
	PlannerServiceVoteProcedure                      = "/planbuddy.v1.PlannerService/Vote"
	PlannerServiceRsvpProcedure                      = "/planbuddy.v1.PlannerService/Rsvp"
	PlannerServiceFinalizePlanProcedure              = "/planbuddy.v1.PlannerService/FinalizePlan"
	PlannerServiceDiscardPlanProcedure               = "/planbuddy.v1.PlannerService/DiscardPlan"
	PlannerServiceDismissFinalizedProcedure          = "/planbuddy.v1.PlannerService/DismissFinalized"
	PlannerServiceListItinerariesProcedure           = "/planbuddy.v1.PlannerService/ListItineraries"
	PlannerServiceGetProfileProcedure                = "/planbuddy.v1.PlannerService/GetProfile"
	PlannerServiceUpdateProfileProcedure             = "/planbuddy.v1.PlannerService/UpdateProfile"
	PlannerServiceSetNotificationPermissionProcedure = "/planbuddy.v1.PlannerService/SetNotificationPermission"
	PlannerServiceChatProcedure                      = "/planbuddy.v1.PlannerService/Chat"
	PlannerServiceGetChatProcedure                   = "/planbuddy.v1.PlannerService/GetChat"
	PlannerServiceResetChatProcedure                 = "/planbuddy.v1.PlannerService/ResetChat"
)

// PlannerServiceClient is a client for the planbuddy.v1.PlannerService service.
type PlannerServiceClient interface {
	CreatePlan(context.Context, *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.CreatePlanResponse], error)
	GetPlan(context.Context, *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error)
	Vote(context.Context, *connect.Request[api.VoteRequest]) (*connect.Response[api.VoteResponse], error)
	Rsvp(context.Context, *connect.Request[api.RsvpRequest]) (*connect.Response[api.RsvpResponse], error)
	FinalizePlan(context.Context, *connect.Request[api.FinalizePlanRequest]) (*connect.Response[api.FinalizePlanResponse], error)
	DiscardPlan(context.Context, *connect.Request[api.DiscardPlanRequest]) (*connect.Response[emptypb.Empty], error)
	DismissFinalized(context.Context, *connect.Request[api.DismissFinalizedRequest]) (*connect.Response[emptypb.Empty], error)
	ListItineraries(context.Context, *connect.Request[api.ListItinerariesRequest]) (*connect.Response[api.ListItinerariesResponse], error)
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	SetNotificationPermission(context.Context, *connect.Request[api.SetNotificationPermissionRequest]) (*connect.Response[api.SetNotificationPermissionResponse], error)
	Chat(context.Context, *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error)
	GetChat(context.Context, *connect.Request[api.GetChatRequest]) (*connect.Response[api.GetChatResponse], error)
	ResetChat(context.Context, *connect.Request[api.ResetChatRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewPlannerServiceClient constructs a client for the planbuddy.v1.PlannerService service.
func NewPlannerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlannerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &plannerServiceClient{
		createPlan:                connect.NewClient[api.CreatePlanRequest, api.CreatePlanResponse](httpClient, baseURL+PlannerServiceCreatePlanProcedure, opts...),
		getPlan:                   connect.NewClient[api.GetPlanRequest, api.GetPlanResponse](httpClient, baseURL+PlannerServiceGetPlanProcedure, opts...),
		vote:                      connect.NewClient[api.VoteRequest, api.VoteResponse](httpClient, baseURL+PlannerServiceVoteProcedure, opts...),
		rsvp:                      connect.NewClient[api.RsvpRequest, api.RsvpResponse](httpClient, baseURL+PlannerServiceRsvpProcedure, opts...),
		finalizePlan:              connect.NewClient[api.FinalizePlanRequest, api.FinalizePlanResponse](httpClient, baseURL+PlannerServiceFinalizePlanProcedure, opts...),
		discardPlan:               connect.NewClient[api.DiscardPlanRequest, emptypb.Empty](httpClient, baseURL+PlannerServiceDiscardPlanProcedure, opts...),
		dismissFinalized:          connect.NewClient[api.DismissFinalizedRequest, emptypb.Empty](httpClient, baseURL+PlannerServiceDismissFinalizedProcedure, opts...),
		listItineraries:           connect.NewClient[api.ListItinerariesRequest, api.ListItinerariesResponse](httpClient, baseURL+PlannerServiceListItinerariesProcedure, opts...),
		getProfile:                connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+PlannerServiceGetProfileProcedure, opts...),
		updateProfile:             connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+PlannerServiceUpdateProfileProcedure, opts...),
		setNotificationPermission: connect.NewClient[api.SetNotificationPermissionRequest, api.SetNotificationPermissionResponse](httpClient, baseURL+PlannerServiceSetNotificationPermissionProcedure, opts...),
		chat:                      connect.NewClient[api.ChatRequest, api.ChatResponse](httpClient, baseURL+PlannerServiceChatProcedure, opts...),
		getChat:                   connect.NewClient[api.GetChatRequest, api.GetChatResponse](httpClient, baseURL+PlannerServiceGetChatProcedure, opts...),
		resetChat:                 connect.NewClient[api.ResetChatRequest, emptypb.Empty](httpClient, baseURL+PlannerServiceResetChatProcedure, opts...),
	}
}

type plannerServiceClient struct {
	createPlan                *connect.Client[api.CreatePlanRequest, api.CreatePlanResponse]
	getPlan                   *connect.Client[api.GetPlanRequest, api.GetPlanResponse]
	vote                      *connect.Client[api.VoteRequest, api.VoteResponse]
	rsvp                      *connect.Client[api.RsvpRequest, api.RsvpResponse]
	finalizePlan              *connect.Client[api.FinalizePlanRequest, api.FinalizePlanResponse]
	discardPlan               *connect.Client[api.DiscardPlanRequest, emptypb.Empty]
	dismissFinalized          *connect.Client[api.DismissFinalizedRequest, emptypb.Empty]
	listItineraries           *connect.Client[api.ListItinerariesRequest, api.ListItinerariesResponse]
	getProfile                *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateProfile             *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
	setNotificationPermission *connect.Client[api.SetNotificationPermissionRequest, api.SetNotificationPermissionResponse]
	chat                      *connect.Client[api.ChatRequest, api.ChatResponse]
	getChat                   *connect.Client[api.GetChatRequest, api.GetChatResponse]
	resetChat                 *connect.Client[api.ResetChatRequest, emptypb.Empty]
}

func (c *plannerServiceClient) CreatePlan(ctx context.Context, req *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.CreatePlanResponse], error) {
	return c.createPlan.CallUnary(ctx, req)
}

func (c *plannerServiceClient) GetPlan(ctx context.Context, req *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error) {
	return c.getPlan.CallUnary(ctx, req)
}

func (c *plannerServiceClient) Vote(ctx context.Context, req *connect.Request[api.VoteRequest]) (*connect.Response[api.VoteResponse], error) {
	return c.vote.CallUnary(ctx, req)
}

func (c *plannerServiceClient) Rsvp(ctx context.Context, req *connect.Request[api.RsvpRequest]) (*connect.Response[api.RsvpResponse], error) {
	return c.rsvp.CallUnary(ctx, req)
}

func (c *plannerServiceClient) FinalizePlan(ctx context.Context, req *connect.Request[api.FinalizePlanRequest]) (*connect.Response[api.FinalizePlanResponse], error) {
	return c.finalizePlan.CallUnary(ctx, req)
}

func (c *plannerServiceClient) DiscardPlan(ctx context.Context, req *connect.Request[api.DiscardPlanRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.discardPlan.CallUnary(ctx, req)
}

func (c *plannerServiceClient) DismissFinalized(ctx context.Context, req *connect.Request[api.DismissFinalizedRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.dismissFinalized.CallUnary(ctx, req)
}

func (c *plannerServiceClient) ListItineraries(ctx context.Context, req *connect.Request[api.ListItinerariesRequest]) (*connect.Response[api.ListItinerariesResponse], error) {
	return c.listItineraries.CallUnary(ctx, req)
}

func (c *plannerServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *plannerServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

func (c *plannerServiceClient) SetNotificationPermission(ctx context.Context, req *connect.Request[api.SetNotificationPermissionRequest]) (*connect.Response[api.SetNotificationPermissionResponse], error) {
	return c.setNotificationPermission.CallUnary(ctx, req)
}

func (c *plannerServiceClient) Chat(ctx context.Context, req *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error) {
	return c.chat.CallUnary(ctx, req)
}

func (c *plannerServiceClient) GetChat(ctx context.Context, req *connect.Request[api.GetChatRequest]) (*connect.Response[api.GetChatResponse], error) {
	return c.getChat.CallUnary(ctx, req)
}

func (c *plannerServiceClient) ResetChat(ctx context.Context, req *connect.Request[api.ResetChatRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.resetChat.CallUnary(ctx, req)
}

// PlannerServiceHandler is an implementation of the planbuddy.v1.PlannerService service.
type PlannerServiceHandler interface {
	CreatePlan(context.Context, *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.CreatePlanResponse], error)
	GetPlan(context.Context, *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error)
	Vote(context.Context, *connect.Request[api.VoteRequest]) (*connect.Response[api.VoteResponse], error)
	Rsvp(context.Context, *connect.Request[api.RsvpRequest]) (*connect.Response[api.RsvpResponse], error)
	FinalizePlan(context.Context, *connect.Request[api.FinalizePlanRequest]) (*connect.Response[api.FinalizePlanResponse], error)
	DiscardPlan(context.Context, *connect.Request[api.DiscardPlanRequest]) (*connect.Response[emptypb.Empty], error)
	DismissFinalized(context.Context, *connect.Request[api.DismissFinalizedRequest]) (*connect.Response[emptypb.Empty], error)
	ListItineraries(context.Context, *connect.Request[api.ListItinerariesRequest]) (*connect.Response[api.ListItinerariesResponse], error)
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	SetNotificationPermission(context.Context, *connect.Request[api.SetNotificationPermissionRequest]) (*connect.Response[api.SetNotificationPermissionResponse], error)
	Chat(context.Context, *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error)
	GetChat(context.Context, *connect.Request[api.GetChatRequest]) (*connect.Response[api.GetChatResponse], error)
	ResetChat(context.Context, *connect.Request[api.ResetChatRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewPlannerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlannerServiceHandler(svc PlannerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	createPlan := connect.NewUnaryHandler(PlannerServiceCreatePlanProcedure, svc.CreatePlan, opts...)
	getPlan := connect.NewUnaryHandler(PlannerServiceGetPlanProcedure, svc.GetPlan, opts...)
	vote := connect.NewUnaryHandler(PlannerServiceVoteProcedure, svc.Vote, opts...)
	rsvp := connect.NewUnaryHandler(PlannerServiceRsvpProcedure, svc.Rsvp, opts...)
	finalizePlan := connect.NewUnaryHandler(PlannerServiceFinalizePlanProcedure, svc.FinalizePlan, opts...)
	discardPlan := connect.NewUnaryHandler(PlannerServiceDiscardPlanProcedure, svc.DiscardPlan, opts...)
	dismissFinalized := connect.NewUnaryHandler(PlannerServiceDismissFinalizedProcedure, svc.DismissFinalized, opts...)
	listItineraries := connect.NewUnaryHandler(PlannerServiceListItinerariesProcedure, svc.ListItineraries, opts...)
	getProfile := connect.NewUnaryHandler(PlannerServiceGetProfileProcedure, svc.GetProfile, opts...)
	updateProfile := connect.NewUnaryHandler(PlannerServiceUpdateProfileProcedure, svc.UpdateProfile, opts...)
	setNotificationPermission := connect.NewUnaryHandler(PlannerServiceSetNotificationPermissionProcedure, svc.SetNotificationPermission, opts...)
	chat := connect.NewUnaryHandler(PlannerServiceChatProcedure, svc.Chat, opts...)
	getChat := connect.NewUnaryHandler(PlannerServiceGetChatProcedure, svc.GetChat, opts...)
	resetChat := connect.NewUnaryHandler(PlannerServiceResetChatProcedure, svc.ResetChat, opts...)
	return "/" + PlannerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PlannerServiceCreatePlanProcedure:
			createPlan.ServeHTTP(w, r)
		case PlannerServiceGetPlanProcedure:
			getPlan.ServeHTTP(w, r)
		case PlannerServiceVoteProcedure:
			vote.ServeHTTP(w, r)
		case PlannerServiceRsvpProcedure:
			rsvp.ServeHTTP(w, r)
		case PlannerServiceFinalizePlanProcedure:
			finalizePlan.ServeHTTP(w, r)
		case PlannerServiceDiscardPlanProcedure:
			discardPlan.ServeHTTP(w, r)
		case PlannerServiceDismissFinalizedProcedure:
			dismissFinalized.ServeHTTP(w, r)
		case PlannerServiceListItinerariesProcedure:
			listItineraries.ServeHTTP(w, r)
		case PlannerServiceGetProfileProcedure:
			getProfile.ServeHTTP(w, r)
		case PlannerServiceUpdateProfileProcedure:
			updateProfile.ServeHTTP(w, r)
		case PlannerServiceSetNotificationPermissionProcedure:
			setNotificationPermission.ServeHTTP(w, r)
		case PlannerServiceChatProcedure:
			chat.ServeHTTP(w, r)
		case PlannerServiceGetChatProcedure:
			getChat.ServeHTTP(w, r)
		case PlannerServiceResetChatProcedure:
			resetChat.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedPlannerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPlannerServiceHandler struct{}

func (UnimplementedPlannerServiceHandler) CreatePlan(context.Context, *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.CreatePlanResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.CreatePlan is not implemented"))
}

func (UnimplementedPlannerServiceHandler) GetPlan(context.Context, *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.GetPlan is not implemented"))
}

func (UnimplementedPlannerServiceHandler) Vote(context.Context, *connect.Request[api.VoteRequest]) (*connect.Response[api.VoteResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.Vote is not implemented"))
}

func (UnimplementedPlannerServiceHandler) Rsvp(context.Context, *connect.Request[api.RsvpRequest]) (*connect.Response[api.RsvpResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.Rsvp is not implemented"))
}

func (UnimplementedPlannerServiceHandler) FinalizePlan(context.Context, *connect.Request[api.FinalizePlanRequest]) (*connect.Response[api.FinalizePlanResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.FinalizePlan is not implemented"))
}

func (UnimplementedPlannerServiceHandler) DiscardPlan(context.Context, *connect.Request[api.DiscardPlanRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.DiscardPlan is not implemented"))
}

func (UnimplementedPlannerServiceHandler) DismissFinalized(context.Context, *connect.Request[api.DismissFinalizedRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.DismissFinalized is not implemented"))
}

func (UnimplementedPlannerServiceHandler) ListItineraries(context.Context, *connect.Request[api.ListItinerariesRequest]) (*connect.Response[api.ListItinerariesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.ListItineraries is not implemented"))
}

func (UnimplementedPlannerServiceHandler) GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.GetProfile is not implemented"))
}

func (UnimplementedPlannerServiceHandler) UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.UpdateProfile is not implemented"))
}

func (UnimplementedPlannerServiceHandler) SetNotificationPermission(context.Context, *connect.Request[api.SetNotificationPermissionRequest]) (*connect.Response[api.SetNotificationPermissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.SetNotificationPermission is not implemented"))
}

func (UnimplementedPlannerServiceHandler) Chat(context.Context, *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.Chat is not implemented"))
}

func (UnimplementedPlannerServiceHandler) GetChat(context.Context, *connect.Request[api.GetChatRequest]) (*connect.Response[api.GetChatResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.GetChat is not implemented"))
}

func (UnimplementedPlannerServiceHandler) ResetChat(context.Context, *connect.Request[api.ResetChatRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("planbuddy.v1.PlannerService.ResetChat is not implemented"))
}
