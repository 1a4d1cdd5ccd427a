package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/infotraining/quote_syncer/pkg/market"
	"github.com/infotraining/quote_syncer/pkg/storage"
	"github.com/infotraining/quote_syncer/pkg/version"
	"github.com/infotraining/quote_syncer/pkg/xerror"
	"github.com/infotraining/quote_syncer/pkg/xmetrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrAlertNotExists = xerror.NewWithoutStack(xerror.Market, "alert not exists")

func writeJson(w http.ResponseWriter, data interface{}) {
	if data, err := json.Marshal(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	} else {
		w.Write(data)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, market.ErrStockNotListed) || errors.Is(err, storage.ErrQuoteNotExists) || errors.Is(err, ErrAlertNotExists) {
		status = http.StatusNotFound
	} else if xerr, ok := xerror.As(err); ok && xerr.Category() == xerror.Market {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

type success struct {
	Success bool `json:"success"`
}

// maxFiredAlerts bounds how many fired alerts stay listed.
var maxFiredAlerts = 256

// alertEntry keeps a PriceAlert alive: stocks only hold weak references to it.
type alertEntry struct {
	id     int64
	symbol string
	alert  *market.PriceAlert
	active bool // counted in the alerts gauge
}

type HttpService struct {
	port     int
	server   *http.Server
	mux      *http.ServeMux
	hostInfo string

	db       storage.DB
	exchange *market.Exchange

	alertsLock  sync.Mutex
	nextAlertId int64
	alerts      map[int64]*alertEntry
}

func NewHttpServer(host string, port int, db storage.DB, exchange *market.Exchange) *HttpService {
	return &HttpService{
		port:     port,
		mux:      http.NewServeMux(),
		hostInfo: fmt.Sprintf("%s:%d", host, port),

		db:       db,
		exchange: exchange,
		alerts:   make(map[int64]*alertEntry),
	}
}

// versionHandler returns the version as a JSON object with a "version" field.
func (s *HttpService) versionHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("get version")

	type versionResult struct {
		Version string `json:"version"`
	}

	result := versionResult{Version: version.GetVersion()}
	writeJson(w, result)
}

type StockRequest struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

type StockInfo struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	Subscribers int     `json:"subscribers"`
}

func decodeStockRequest(w http.ResponseWriter, r *http.Request) (*StockRequest, bool) {
	var request StockRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if request.Symbol == "" {
		http.Error(w, "symbol is empty", http.StatusBadRequest)
		return nil, false
	}
	return &request, true
}

// HttpServer serving /list_stock by json http rpc
func (s *HttpService) listStockHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("list stock")

	request, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.exchange.List(request.Symbol, request.Price); err != nil {
		log.Errorf("list stock %s failed: %+v", request.Symbol, err)
		writeError(w, err)
		return
	}

	writeJson(w, success{Success: true})
}

func (s *HttpService) delistHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("delist stock")

	request, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}

	if !s.exchange.Delist(request.Symbol) {
		writeError(w, xerror.XWrapf(market.ErrStockNotListed, "symbol: %s", request.Symbol))
		return
	}
	s.cancelAlertsOf(request.Symbol)

	if err := s.db.RemoveQuote(request.Symbol); err != nil {
		log.Errorf("remove quote %s failed: %+v", request.Symbol, err)
		writeError(w, err)
		return
	}

	writeJson(w, success{Success: true})
}

func (s *HttpService) updatePriceHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("update price")

	request, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}

	if err := s.exchange.UpdatePrice(request.Symbol, request.Price); err != nil {
		log.Errorf("update price of %s failed: %+v", request.Symbol, err)
		writeError(w, err)
		return
	}

	writeJson(w, success{Success: true})
}

func (s *HttpService) listStocksHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("list stocks")

	type result struct {
		Stocks []StockInfo `json:"stocks"`
	}

	stocks := s.exchange.Stocks()
	infos := make([]StockInfo, 0, len(stocks))
	for _, stock := range stocks {
		infos = append(infos, StockInfo{Symbol: stock.Symbol(), Price: stock.Price(), Subscribers: stock.Len()})
	}
	writeJson(w, result{Stocks: infos})
}

func (s *HttpService) getQuoteHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("get quote")

	request, ok := decodeStockRequest(w, r)
	if !ok {
		return
	}

	quote, err := s.db.GetQuote(request.Symbol)
	if err != nil {
		writeError(w, err)
		return
	}

	type result struct {
		Symbol    string  `json:"symbol"`
		Price     float64 `json:"price"`
		Timestamp int64   `json:"timestamp"`
	}
	writeJson(w, result{Symbol: quote.Symbol, Price: quote.Price, Timestamp: quote.Timestamp})
}

type CreateAlertRequest struct {
	Symbol    string  `json:"symbol"`
	Direction string  `json:"direction"`
	Threshold float64 `json:"threshold"`
}

type AlertInfo struct {
	Id        int64   `json:"id"`
	Symbol    string  `json:"symbol"`
	Direction string  `json:"direction"`
	Threshold float64 `json:"threshold"`
	Fired     bool    `json:"fired"`
	Price     float64 `json:"price,omitempty"`
}

func (s *HttpService) createAlert(request *CreateAlertRequest) (int64, error) {
	direction, err := market.ParseDirection(request.Direction)
	if err != nil {
		return 0, err
	}
	stock, ok := s.exchange.Stock(request.Symbol)
	if !ok {
		return 0, xerror.XWrapf(market.ErrStockNotListed, "symbol: %s", request.Symbol)
	}

	alert, err := market.NewPriceAlert(direction, request.Threshold)
	if err != nil {
		return 0, err
	}

	s.alertsLock.Lock()
	s.nextAlertId++
	id := s.nextAlertId
	s.alerts[id] = &alertEntry{id: id, symbol: request.Symbol, alert: alert, active: true}
	s.alertsLock.Unlock()
	xmetrics.AddAlert()

	alert.OnFire(func(market.PriceChanged) { s.alertFired(id) })
	alert.Watch(stock)
	log.Infof("create alert %d, %s %s %v", id, request.Symbol, direction, request.Threshold)
	return id, nil
}

func (s *HttpService) createAlertHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("create alert")

	var request CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.createAlert(&request)
	if err != nil {
		log.Errorf("create alert failed: %+v", err)
		writeError(w, err)
		return
	}

	type result struct {
		Id int64 `json:"id"`
	}
	writeJson(w, result{Id: id})
}

func (s *HttpService) cancelAlert(id int64) error {
	s.alertsLock.Lock()
	entry, ok := s.alerts[id]
	delete(s.alerts, id)
	if ok && entry.active {
		entry.active = false
		xmetrics.RemoveAlert()
	}
	s.alertsLock.Unlock()

	if !ok {
		return xerror.XWrapf(ErrAlertNotExists, "id: %d", id)
	}

	if stock, ok := s.exchange.Stock(entry.symbol); ok {
		stock.Unsubscribe(entry.alert.Ref())
	}
	return nil
}

// alertFired keeps the fired alert listed until more than maxFiredAlerts
// have fired, dropping the oldest first.
func (s *HttpService) alertFired(id int64) {
	s.alertsLock.Lock()
	defer s.alertsLock.Unlock()

	entry, ok := s.alerts[id]
	if !ok || !entry.active {
		return
	}
	entry.active = false
	xmetrics.RemoveAlert()

	var fired []int64
	for firedId, e := range s.alerts {
		if !e.active {
			fired = append(fired, firedId)
		}
	}
	if len(fired) <= maxFiredAlerts {
		return
	}
	slices.Sort(fired)
	for _, firedId := range fired[:len(fired)-maxFiredAlerts] {
		delete(s.alerts, firedId)
	}
}

func (s *HttpService) activeAlerts() int {
	s.alertsLock.Lock()
	defer s.alertsLock.Unlock()

	n := 0
	for _, entry := range s.alerts {
		if entry.active {
			n++
		}
	}
	return n
}

// cancelAlertsOf drops the alerts of a delisted symbol.
func (s *HttpService) cancelAlertsOf(symbol string) {
	s.alertsLock.Lock()
	defer s.alertsLock.Unlock()

	for id, entry := range s.alerts {
		if entry.symbol == symbol {
			delete(s.alerts, id)
			if entry.active {
				entry.active = false
				xmetrics.RemoveAlert()
			}
		}
	}
}

func (s *HttpService) cancelAlertHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("cancel alert")

	var request struct {
		Id int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.cancelAlert(request.Id); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, success{Success: true})
}

func (s *HttpService) listAlertsHandler(w http.ResponseWriter, r *http.Request) {
	log.Infof("list alerts")

	s.alertsLock.Lock()
	ids := maps.Keys(s.alerts)
	slices.Sort(ids)
	entries := make([]*alertEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, s.alerts[id])
	}
	s.alertsLock.Unlock()

	infos := make([]AlertInfo, 0, len(entries))
	for _, entry := range entries {
		info := AlertInfo{
			Id:        entry.id,
			Symbol:    entry.symbol,
			Direction: entry.alert.Direction().String(),
			Threshold: entry.alert.Threshold(),
		}
		if event, fired := entry.alert.Event(); fired {
			info.Fired = true
			info.Price = event.New
		}
		infos = append(infos, info)
	}

	type result struct {
		Alerts []AlertInfo `json:"alerts"`
	}
	writeJson(w, result{Alerts: infos})
}

func (s *HttpService) RegisterHandlers() {
	s.mux.HandleFunc("/version", s.versionHandler)
	s.mux.HandleFunc("/list_stock", s.listStockHandler)
	s.mux.HandleFunc("/delist", s.delistHandler)
	s.mux.HandleFunc("/update_price", s.updatePriceHandler)
	s.mux.HandleFunc("/list_stocks", s.listStocksHandler)
	s.mux.HandleFunc("/get_quote", s.getQuoteHandler)
	s.mux.HandleFunc("/create_alert", s.createAlertHandler)
	s.mux.HandleFunc("/cancel_alert", s.cancelAlertHandler)
	s.mux.HandleFunc("/list_alerts", s.listAlertsHandler)
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *HttpService) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Infof("Server listening on %s", addr)

	s.RegisterHandlers()

	s.server = &http.Server{Addr: addr, Handler: s.mux}
	err := s.server.ListenAndServe()
	if err == nil {
		return nil
	} else if err == http.ErrServerClosed {
		log.Info("http server closed")
		return nil
	} else {
		return xerror.Wrapf(err, xerror.Normal, "http server start on %s failed", addr)
	}
}

// Stop stops the HTTP server gracefully.
// It returns an error if the server shutdown fails.
func (s *HttpService) Stop() error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(context.TODO()); err != nil {
		return xerror.Wrapf(err, xerror.Normal, "http server close failed")
	}
	return nil
}
