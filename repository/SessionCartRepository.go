package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"techStore/entities"
	"techStore/models"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"
const cartTTL = 24 * time.Hour

// SessionCartRepository holds the anonymous visitor's cart as a JSON blob
// in redis, keyed by the cart session token. The cart is reclaimed by the
// key TTL when the visitor goes away.
type SessionCartRepository interface {
	SetCart(token string, cart entities.CartData) (err error)
	GetCart(token string) (cart entities.CartData, err error)
	DeleteCart(token string) (err error)
}

type SessionCartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewSessionCartRepository(redisConn *redis.Client, ctx context.Context) (SessionCartRepository, error) {
	if redisConn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redisConn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &SessionCartRepo{
		rdb: redisConn,
		ctx: ctx,
	}, nil
}

func (c *SessionCartRepo) SetCart(token string, cart entities.CartData) (err error) {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrServerError
		return
	}
	err = c.rdb.Set(c.ctx, cartKeyPrefix+token, jsonData, cartTTL).Err()
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *SessionCartRepo) GetCart(token string) (cart entities.CartData, err error) {
	cart = entities.CartData{Items: map[int]int{}}
	val, e := c.rdb.Get(c.ctx, cartKeyPrefix+token).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		log.Printf("GetCart: %v", e)
		err = models.ErrServerError
		return
	}
	err = json.Unmarshal([]byte(val), &cart)
	if err != nil {
		log.Printf("GetCart: %v", err)
		err = models.ErrServerError
		return
	}
	if cart.Items == nil {
		cart.Items = map[int]int{}
	}
	return
}

func (c *SessionCartRepo) DeleteCart(token string) (err error) {
	err = c.rdb.Del(c.ctx, cartKeyPrefix+token).Err()
	if err != nil {
		log.Printf("DeleteCart: %v", err)
		err = models.ErrServerError
	}
	return
}
