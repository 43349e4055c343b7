package service

import (
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/biz"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/ball"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/circle"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/geom"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/opposite"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/shape"
	"github.com/henryforrest/The-Cube-Game/internal/biz/game/thisorthat"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewCubeService)

// CubeService exposes the minigame collection over HTTP/JSON.
type CubeService struct {
	uc  *biz.UseCase
	log *log.Helper
}

// NewCubeService new a cube service.
func NewCubeService(uc *biz.UseCase, logger log.Logger) *CubeService {
	return &CubeService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// GameInfo 玩法元信息
type GameInfo struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	HasLeaderboard bool   `json:"has_leaderboard"`
}

type ListGamesReply struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Games   []GameInfo `json:"games"`
	Total   int        `json:"total"`
}

type LockReply struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	Locked        bool   `json:"locked"`
	PreviousScore int    `json:"previous_score"`
}

type DrawRequest struct {
	PlayerID string       `json:"player_id"`
	Points   []geom.Point `json:"points"`
}

type DrawReply struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"`
	Perfect bool   `json:"perfect"`
	Day     string `json:"day"`
}

type StartShapeRequest struct {
	PlayerID string `json:"player_id"`
}

type StartShapeReply struct {
	Code           int          `json:"code"`
	Message        string       `json:"message"`
	Target         []geom.Point `json:"target"`
	ShowDurationMS int          `json:"show_duration_ms"`
}

type StartBallRequest struct {
	PlayerID string `json:"player_id"`
}

type StartBallReply struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	SessionID string    `json:"session_id"`
	BoxSize   float64   `json:"box_size"`
	View      ball.View `json:"view"`
}

type BallViewReply struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	View    ball.View `json:"view"`
}

type TapRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TapReply struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Hit     bool   `json:"hit"`
	Score   int    `json:"score"`
	Outcome string `json:"outcome"`
}

type AnswerRequest struct {
	PlayerID string `json:"player_id"`
	Answer   string `json:"answer"`
}

type AnswerReply struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Word    string  `json:"word"`
	Answer  string  `json:"answer"`
	SamePct float64 `json:"same_pct"`
}

type LeaderboardReply struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Entries []biz.LeaderboardEntry `json:"entries"`
}

type ResetRequest struct {
	PlayerID string `json:"player_id"`
}

type Reply struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// requirePlayer 玩家身份为必填项
func requirePlayer(playerID string) error {
	if playerID == "" {
		return errors.New(401, "PLAYER_REQUIRED", "player_id is required")
	}
	return nil
}

// RegisterRoutes mounts all game routes under /v1.
func (s *CubeService) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/v1")

	r.GET("/games", s.listGames)
	r.GET("/games/{game}/lock", s.checkLock)
	r.POST("/games/{game}/draw", s.submitDraw)
	r.POST("/games/shape/start", s.startShape)
	r.POST("/games/ball/sessions", s.startBall)
	r.GET("/games/ball/sessions/{id}", s.viewBall)
	r.POST("/games/ball/sessions/{id}/tap", s.tapBall)
	r.POST("/games/{game}/answer", s.submitAnswer)
	r.GET("/games/{game}/leaderboard", s.leaderboard)
	r.POST("/games/{game}/reset", s.reset)
}

func (s *CubeService) listGames(ctx khttp.Context) error {
	all := s.uc.ListGames()
	games := make([]GameInfo, len(all))
	for i, g := range all {
		games[i] = GameInfo{
			Slug:           g.Slug(),
			Name:           g.Name(),
			HasLeaderboard: g.Collection() != "",
		}
	}
	return ctx.Result(200, &ListGamesReply{Message: "success", Games: games, Total: len(games)})
}

func (s *CubeService) checkLock(ctx khttp.Context) error {
	slug := pathVar(ctx, "game")
	playerID := ctx.Query().Get("player_id")
	if err := requirePlayer(playerID); err != nil {
		return err
	}

	state, err := s.uc.CheckLock(ctx, playerID, slug, time.Now())
	if err != nil {
		return err
	}
	return ctx.Result(200, &LockReply{
		Message:       "success",
		Locked:        state.Locked,
		PreviousScore: state.PreviousScore,
	})
}

func (s *CubeService) submitDraw(ctx khttp.Context) error {
	slug := pathVar(ctx, "game")
	var req DrawRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := requirePlayer(req.PlayerID); err != nil {
		return err
	}

	var res biz.DrawResult
	var err error
	switch slug {
	case circle.Slug:
		res, err = s.uc.SubmitCircle(ctx, req.PlayerID, req.Points, time.Now())
	case shape.Slug:
		res, err = s.uc.SubmitShape(ctx, req.PlayerID, req.Points, time.Now())
	default:
		return errors.Newf(404, "GAME_NOT_FOUND", "no draw game: %s", slug)
	}
	if err != nil {
		return err
	}
	return ctx.Result(200, &DrawReply{
		Message: "success",
		Score:   res.Record.Score,
		Outcome: string(res.Record.Outcome),
		Perfect: res.Perfect,
		Day:     res.Record.Day,
	})
}

func (s *CubeService) startShape(ctx khttp.Context) error {
	var req StartShapeRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := requirePlayer(req.PlayerID); err != nil {
		return err
	}

	target, err := s.uc.StartShape(ctx, req.PlayerID, time.Now())
	if err != nil {
		return err
	}
	return ctx.Result(200, &StartShapeReply{
		Message:        "success",
		Target:         target,
		ShowDurationMS: shape.ShowDurationMS,
	})
}

func (s *CubeService) startBall(ctx khttp.Context) error {
	var req StartBallRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := requirePlayer(req.PlayerID); err != nil {
		return err
	}

	now := time.Now()
	sess, err := s.uc.StartBall(ctx, req.PlayerID, now)
	if err != nil {
		return err
	}
	return ctx.Result(200, &StartBallReply{
		Message:   "success",
		SessionID: sess.ID,
		BoxSize:   ball.BoxSize,
		View:      sess.AdvanceTo(now),
	})
}

func (s *CubeService) viewBall(ctx khttp.Context) error {
	view, err := s.uc.ViewBall(pathVar(ctx, "id"), time.Now())
	if err != nil {
		return err
	}
	return ctx.Result(200, &BallViewReply{Message: "success", View: view})
}

func (s *CubeService) tapBall(ctx khttp.Context) error {
	id := pathVar(ctx, "id")
	var req TapRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	res, err := s.uc.TapBall(ctx, id, req.X, req.Y, time.Now())
	if err != nil {
		return err
	}
	return ctx.Result(200, &TapReply{
		Message: "success",
		Hit:     res.Hit,
		Score:   res.Record.Score,
		Outcome: string(res.Record.Outcome),
	})
}

func (s *CubeService) submitAnswer(ctx khttp.Context) error {
	slug := pathVar(ctx, "game")
	var req AnswerRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := requirePlayer(req.PlayerID); err != nil {
		return err
	}

	var res biz.AnswerResult
	var err error
	switch slug {
	case opposite.Slug:
		res, err = s.uc.SubmitOpposite(ctx, req.PlayerID, req.Answer, time.Now())
	case thisorthat.Slug:
		res, err = s.uc.SubmitThisOrThat(ctx, req.PlayerID, req.Answer, time.Now())
	default:
		return errors.Newf(404, "GAME_NOT_FOUND", "no answer game: %s", slug)
	}
	if err != nil {
		return err
	}
	return ctx.Result(200, &AnswerReply{
		Message: "success",
		Word:    res.Word,
		Answer:  res.Answer,
		SamePct: res.SamePct,
	})
}

func (s *CubeService) leaderboard(ctx khttp.Context) error {
	entries, err := s.uc.Leaderboard(ctx, pathVar(ctx, "game"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &LeaderboardReply{Message: "success", Entries: entries})
}

func (s *CubeService) reset(ctx khttp.Context) error {
	slug := pathVar(ctx, "game")
	var req ResetRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := requirePlayer(req.PlayerID); err != nil {
		return err
	}

	if err := s.uc.Reset(ctx, req.PlayerID, slug, time.Now()); err != nil {
		return err
	}
	s.log.Infof("dev reset: player=%s game=%s", req.PlayerID, slug)
	return ctx.Result(200, &Reply{Message: "success"})
}

func pathVar(ctx khttp.Context, name string) string {
	return ctx.Vars().Get(name)
}
