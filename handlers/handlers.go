package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"techStore/entities"
	"techStore/models"
	"techStore/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	us  services.UserService
	ps  services.ProductService
	cs  services.CartService
	rs  services.ReviewService
	ors services.OrderService
}

type HandlerParams struct {
	UsrService services.UserService
	PrdService services.ProductService
	CrtService services.CartService
	RevService services.ReviewService
	OrdService services.OrderService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:  params.UsrService,
		ps:  params.PrdService,
		cs:  params.CrtService,
		rs:  params.RevService,
		ors: params.OrdService,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	if c, err := r.Cookie("sessionId"); err == nil {
		if uModel, exists := h.us.WelcomeRequest(c.Value); exists {
			name = uModel.Username
		}
	}
	w.Write([]byte("Hello, " + name + "!"))
}

// users

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	creds.Role = "user"

	_, err = h.us.SignupRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Signin authenticates, starts a session and folds the anonymous cart, if
// the visitor has one, into the user's persistent cart.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	uModel, sessionId, err := h.us.SigninRequest(creds.Username, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	if c, e := r.Cookie("cartSessionId"); e == nil && c.Value != "" {
		if e = h.cs.MergeSessionIntoUser(c.Value, uModel.Id); e != nil {
			log.Printf("Signin: cart merge failed: %v", e)
		}
		http.SetCookie(w, &http.Cookie{
			Name:    "cartSessionId",
			Value:   "",
			Path:    "/",
			Expires: time.Now(),
		})
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
		// redis keeps sessions for 30 min
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	err := h.us.RefreshRequest(c.Value)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   c.Value,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	err := h.us.DeleteSessionRequest(c.Value)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	data := models.PasswordData{}
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.us.ChangePasswordRequest(c.Value, data.OldPassword, data.NewPassword)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.us.CreateUserRequest(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	profile, err := h.us.GetProfile(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	profile := models.ProfileData{}
	err := json.NewDecoder(r.Body).Decode(&profile)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.us.UpdateProfile(userId, profile)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// products

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prods, err := h.ps.ListProducts(filter)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prods)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	prod, err := h.ps.GetProductById(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, prod)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	productId, err := h.ps.CreateProduct(input)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Write([]byte(strconv.Itoa(productId)))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var input models.ProductInput
	err = json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	input.Id = id
	updated, err := h.ps.UpdateProduct(input)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, updated)
}

// categories and brands

func (h *Handler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.ps.GetAllCategories()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, cats)
}

func (h *Handler) GetCategoryWithProducts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cat, prods, err := h.ps.GetCategoryWithProducts(vars["slug"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, struct {
		Category models.Category_db        `json:"category"`
		Products []entities.ProductPreview `json:"products"`
	}{cat, prods})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	cat := models.Category_db{}
	err := json.NewDecoder(r.Body).Decode(&cat)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	categoryId, err := h.ps.CreateCategory(cat)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Write([]byte(strconv.Itoa(categoryId)))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cat := models.Category_db{}
	err = json.NewDecoder(r.Body).Decode(&cat)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cat.Id = id
	err = h.ps.UpdateCategory(cat)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetAllBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.ps.GetAllBrands()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, brands)
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	brand := models.Brand_db{}
	err := json.NewDecoder(r.Body).Decode(&brand)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	brandId, err := h.ps.CreateBrand(brand)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Write([]byte(strconv.Itoa(brandId)))
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, found, err := h.resolveCart(w, r, false)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if !found {
		writeJSON(w, entities.CartView{Lines: []entities.CartLine{}})
		return
	}
	view, err := h.cs.View(cart)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, view)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cart, _, err := h.resolveCart(w, r, true)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.cs.AddToCart(cart, req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cart, found, err := h.resolveCart(w, r, false)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	err = cart.SetQuantity(req.ProductId, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := entities.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cart, found, err := h.resolveCart(w, r, false)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	err = cart.Remove(req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, found, err := h.resolveCart(w, r, false)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if found {
		if err = cart.Clear(); err != nil {
			WriteErrorResponse(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// resolveCart selects the cart implementation for the request: the
// persistent cart when the visitor is signed in, the anonymous session
// cart otherwise. With create set, a missing cart session is minted and
// its cookie installed; without it, found reports whether any cart is
// addressable yet.
func (h *Handler) resolveCart(w http.ResponseWriter, r *http.Request, create bool) (cart services.Cart, found bool, err error) {
	if c, e := r.Cookie("sessionId"); e == nil {
		userId, _, authenticated, e2 := h.us.ResolveIdentity(c.Value)
		if e2 != nil {
			err = e2
			return
		}
		if authenticated {
			cart, err = h.cs.UserCart(userId)
			found = err == nil
			return
		}
	}

	c, e := r.Cookie("cartSessionId")
	if e == nil && c.Value != "" {
		cart = h.cs.SessionCart(c.Value)
		found = true
		return
	}
	if !create {
		return
	}
	token, err := h.cs.NewCartSession()
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "cartSessionId",
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	cart = h.cs.SessionCart(token)
	found = true
	return
}

// orders

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	form := models.CheckoutForm{}
	err := json.NewDecoder(r.Body).Decode(&form)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	order, err := h.ors.Checkout(userId, form)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) GetOrderById(w http.ResponseWriter, r *http.Request) {
	userId, role, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	order, err := h.ors.GetOrderForUser(id, userId, role)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) GetCurrentUserOrders(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orders, err := h.ors.GetCurrentUserOrders(userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	searchData := models.OrderSearchData{}
	timeStart := r.URL.Query().Get("timestart")
	timeEnd := r.URL.Query().Get("timeend")
	if timeStart != "" && timeEnd != "" {
		start, err := time.Parse("2006-01-02 15:04:05", timeStart)
		end, err2 := time.Parse("2006-01-02 15:04:05", timeEnd)
		if err != nil || err2 != nil || !start.Before(end) {
			http.Error(w, "date is wrong", http.StatusBadRequest)
			return
		}
		searchData.DateStart = &start
		searchData.DateEnd = &end
	}
	if userId := r.URL.Query().Get("userid"); userId != "" {
		id, err := strconv.Atoi(userId)
		if err != nil {
			http.Error(w, "user id is wrong", http.StatusBadRequest)
			return
		}
		searchData.UserId = &id
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidStatus(status) {
			http.Error(w, "status is wrong", http.StatusBadRequest)
			return
		}
		searchData.Status = &status
	}
	if prodId := r.URL.Query().Get("productid"); prodId != "" {
		id, err := strconv.Atoi(prodId)
		if err != nil {
			http.Error(w, "product id is wrong", http.StatusBadRequest)
			return
		}
		searchData.ProdId = &id
	}

	orders, err := h.ors.SearchOrders(searchData)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var status struct {
		Status string `json:"status"`
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = json.NewDecoder(r.Body).Decode(&status)
	if err != nil || !models.IsValidStatus(status.Status) {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.ors.SetOrderStatus(id, status.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.ors.MarkPaid(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	orderId, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err = h.ors.CancelOrder(orderId, userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// reviews

func (h *Handler) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	reviews, err := h.rs.GetProductReviews(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, reviews)
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var req struct {
		Rating int    `json:"rating"`
		Body   string `json:"body"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	reviewId, err := h.rs.AddReview(id, userId, req.Rating, req.Body)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.Write([]byte(strconv.Itoa(reviewId)))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userId, _, ok := h.currentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.rs.DeleteReview(id, userId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.us.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ManagerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.us.CheckAccess(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("CheckAccess: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) currentUser(r *http.Request) (userId int, role string, ok bool) {
	c, err := r.Cookie("sessionId")
	if err != nil {
		return
	}
	userId, role, ok, err = h.us.ResolveIdentity(c.Value)
	if err != nil {
		ok = false
	}
	return
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func parseProductFilter(r *http.Request) (filter models.ProductFilter, err error) {
	q := r.URL.Query()
	filter.Query = q.Get("q")
	filter.CategorySlug = q.Get("category")
	filter.BrandSlug = q.Get("brand")
	filter.InStock = q.Get("in_stock") != ""

	if v := q.Get("min_price"); v != "" {
		d, e := decimal.NewFromString(v)
		if e != nil {
			err = e
			return
		}
		filter.MinPrice = &d
	}
	if v := q.Get("max_price"); v != "" {
		d, e := decimal.NewFromString(v)
		if e != nil {
			err = e
			return
		}
		filter.MaxPrice = &d
	}
	if v := q.Get("min_rating"); v != "" {
		f, e := strconv.ParseFloat(v, 64)
		if e != nil {
			err = e
			return
		}
		filter.MinRating = &f
	}
	if v := q.Get("max_rating"); v != "" {
		f, e := strconv.ParseFloat(v, 64)
		if e != nil {
			err = e
			return
		}
		filter.MaxRating = &f
	}
	return
}
