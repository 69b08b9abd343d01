package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotizapp/cotiz-api/pkg/config"
)

// Dimensionamiento del pool: la API sirve consultas transaccionales cortas
// (CRUD por tenant y el update condicional de decisión); no hay consultas
// analíticas de larga duración que justifiquen un pool grande.
const (
	poolMaxConns        = 16
	poolMinConns        = 2
	poolConnMaxLifetime = 45 * time.Minute
	poolConnMaxIdleTime = 15 * time.Minute
	poolHealthCheckEach = time.Minute
)

// NewPool crea el pool de conexiones PostgreSQL de la aplicación.
//
// Acepta DATABASE_URL completa o el DSN armado desde DB_HOST, DB_PORT, etc.
// En ambos casos el dial se fuerza a IPv4: los contenedores del despliegue no
// tienen ruta IPv6 y el hosting de la base resuelve registros AAAA primero.
// Registra el codec de shopspring/decimal para que NUMERIC llegue como
// decimal.Decimal (montos y umbrales nunca pasan por float64).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	var dsn string
	if cfg.DatabaseURL != "" {
		dsn = forceIPv4URL(cfg.DatabaseURL)
	} else {
		dsnCfg := cfg
		if ipv4, err := lookupIPv4(cfg.Host); err == nil {
			dsnCfg.Host = ipv4
		}
		dsn = dsnCfg.DSN()
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.ConnConfig.DialFunc = dialIPv4
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolConnMaxLifetime
	poolConfig.MaxConnIdleTime = poolConnMaxIdleTime
	poolConfig.HealthCheckPeriod = poolHealthCheckEach

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4 marca la conexión por tcp4. Si el host no tiene dirección IPv4
// conocida se delega al dial normal, por si el resolver la entrega en runtime.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := lookupIPv4(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// lookupIPv4 resuelve un hostname a IPv4. Primero el resolver del sistema;
// si ese solo devuelve AAAA (típico del DNS interno del contenedor), reintenta
// contra un DNS público.
func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("dirección IPv6: %s", host)
	}
	if ip, err := lookupIPv4With(host, nil); err == nil {
		return ip, nil
	}
	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	return lookupIPv4With(host, fallback)
}

func lookupIPv4With(host string, r *net.Resolver) (string, error) {
	var ips []net.IP
	var err error
	if r != nil {
		ips, err = r.LookupIP(context.Background(), "ip4", host)
	} else {
		ips, err = net.LookupIP(host)
	}
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("sin registro A para %s", host)
}

// forceIPv4URL sustituye el hostname de la URL por su IPv4 cuando existe;
// si no se puede resolver, la URL queda intacta y decide el dial.
func forceIPv4URL(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := lookupIPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
