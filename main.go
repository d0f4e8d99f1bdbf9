package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"techStore/config"
	"techStore/database"
	"techStore/handlers"
	"techStore/repository"
	"techStore/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.InitializeTables(db); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}
	log.Printf("db connected")

	rdb := redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisHost + ":" + config.AppConfig.RedisPort,
	})
	defer rdb.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		log.Fatal("redis is not working: " + status.Err().Error())
	}
	log.Printf("redis connected")

	uR, err := repository.NewUserRepository(db)
	if err != nil {
		log.Fatal(err)
	}
	sR, err := repository.NewSessionRepository(rdb, context.Background())
	if err != nil {
		log.Fatal(err)
	}
	pR, _ := repository.NewProductRepository(db)
	cR, _ := repository.NewCategoryRepository(db)
	cartR, _ := repository.NewCartRepository(db)
	scartR, _ := repository.NewSessionCartRepository(rdb, context.Background())
	oR, _ := repository.NewOrderRepository(db)
	rR, _ := repository.NewReviewRepository(db)

	hp := handlers.HandlerParams{
		UsrService: services.NewUserService(uR, sR),
		PrdService: services.NewProductService(pR, cR, rR),
		CrtService: services.NewCartService(pR, cartR, scartR),
		RevService: services.NewReviewService(rR, pR),
		OrdService: services.NewOrderService(pR, cartR, uR, oR),
	}
	ha := handlers.NewHandler(hp)

	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subManAuth := router.NewRoute().Subrouter()
	subManAuth.Use(ha.ManagerAuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/users/signin", ha.Signin).Methods("POST")
	router.HandleFunc("/users/signup", ha.Signup).Methods("POST")
	subAuth.HandleFunc("/users/refresh", ha.Refresh)
	subAuth.HandleFunc("/users/logout", ha.Logout)
	subAuth.HandleFunc("/users/change_password", ha.ChangePassword).Methods("POST")
	subAuth.HandleFunc("/users/profile", ha.GetProfile).Methods("GET")
	subAuth.HandleFunc("/users/profile", ha.UpdateProfile).Methods("POST")
	subManAuth.HandleFunc("/users/create", ha.CreateUser).Methods("POST")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/update", ha.UpdateCartItem).Methods("POST")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")
	subAuth.HandleFunc("/cart/checkout", ha.Checkout).Methods("POST")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}/reviews", ha.GetProductReviews).Methods("GET")
	subAuth.HandleFunc("/products/{id:[0-9]+}/reviews", ha.AddReview).Methods("POST")
	subAuth.HandleFunc("/reviews/{id:[0-9]+}", ha.DeleteReview).Methods("DELETE")
	subManAuth.HandleFunc("/products/create", ha.CreateProduct).Methods("POST")
	subManAuth.HandleFunc("/products/{id:[0-9]+}/update", ha.UpdateProduct).Methods("POST")

	router.HandleFunc("/categories", ha.GetAllCategories).Methods("GET")
	router.HandleFunc("/categories/{slug}", ha.GetCategoryWithProducts).Methods("GET")
	subManAuth.HandleFunc("/categories/create", ha.CreateCategory).Methods("POST")
	subManAuth.HandleFunc("/categories/{id:[0-9]+}/update", ha.UpdateCategory).Methods("POST")
	router.HandleFunc("/brands", ha.GetAllBrands).Methods("GET")
	subManAuth.HandleFunc("/brands/create", ha.CreateBrand).Methods("POST")

	subManAuth.HandleFunc("/orders/search", ha.SearchOrders).Methods("GET")
	subAuth.HandleFunc("/orders/", ha.GetCurrentUserOrders).Methods("GET")
	subAuth.HandleFunc("/orders/{id:[0-9]+}", ha.GetOrderById).Methods("GET")
	subAuth.HandleFunc("/orders/{id:[0-9]+}/cancel", ha.CancelOrder).Methods("POST")
	subManAuth.HandleFunc("/orders/{id:[0-9]+}/update", ha.SetOrderStatus).Methods("POST")
	subManAuth.HandleFunc("/orders/{id:[0-9]+}/paid", ha.MarkOrderPaid).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("starting server on :%s...", config.AppConfig.ServerPort)
	http.ListenAndServe(":"+config.AppConfig.ServerPort, c.Handler(router))
}
