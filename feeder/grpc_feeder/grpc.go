package grpc_feeder

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/sbezverk/natsort/feeder"
	"github.com/sbezverk/natsort/sort"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	grpcpeer "google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	MaxRcvMsgSize = 16 * 1024 * 1024

	serviceName    = "natsort.Sorter"
	sortMethod     = "Sort"
	sortFullMethod = "/" + serviceName + "/" + sortMethod
)

// SorterServer sorts a sequence carried in the text format: the request holds
// the count and the integers, the response the sorted integers.
type SorterServer interface {
	Sort(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
}

var sorterServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SorterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: sortMethod,
			Handler:    sortHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "natsort.proto",
}

func sortHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SorterServer).Sort(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: sortFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SorterServer).Sort(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Server is a running sort service.
type Server interface {
	Addr() net.Addr
	Stop()
}

type grpcSrv struct {
	conn net.Listener
	gSrv *grpc.Server
}

func (srv *grpcSrv) Addr() net.Addr {
	return srv.conn.Addr()
}

func (srv *grpcSrv) Stop() {
	srv.gSrv.Stop()
	srv.conn.Close()
}

func (srv *grpcSrv) Sort(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if p, ok := grpcpeer.FromContext(ctx); ok {
		glog.V(5).Infof("Incoming Sort from: %s", p.Addr)
	}
	s, err := feeder.Decode(bytes.NewReader(in.GetValue()))
	if err != nil {
		if errors.Is(err, feeder.ErrMalformedInput) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	r := sort.NaturalMergeSort(s)
	glog.V(5).Infof("sorted %d integers: %d runs, %d stages", len(s), r.Runs, r.Stages)
	var b bytes.Buffer
	if err := feeder.Encode(&b, r.Sorted); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return wrapperspb.String(b.String()), nil
}

// New starts the sort service on addr, a host:port pair.
func New(addr string) (Server, error) {
	if err := HostAddrValidator(addr); err != nil {
		return nil, err
	}
	conn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &feeder.IOError{Op: "listen", Path: addr, Err: err}
	}

	return serve(conn), nil
}

func serve(conn net.Listener) *grpcSrv {
	srv := &grpcSrv{
		conn: conn,
		gSrv: grpc.NewServer(
			grpc.MaxRecvMsgSize(MaxRcvMsgSize),
			grpc.KeepaliveParams(keepalive.ServerParameters{Time: time.Second * 30, Timeout: time.Second * 10}),
			grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{MinTime: time.Second * 10, PermitWithoutStream: true}),
		),
	}
	srv.gSrv.RegisterService(&sorterServiceDesc, srv)

	go srv.gSrv.Serve(conn)

	return srv
}

// Sort sends s to the sort service behind conn and returns the sorted sequence.
func Sort(ctx context.Context, conn grpc.ClientConnInterface, s []int) ([]int, error) {
	var b bytes.Buffer
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte('\n')
	if err := feeder.Encode(&b, s); err != nil {
		return nil, err
	}
	out := new(wrapperspb.StringValue)
	if err := conn.Invoke(ctx, sortFullMethod, wrapperspb.Bytes(b.Bytes()), out, grpc.MaxCallRecvMsgSize(MaxRcvMsgSize)); err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return nil, errors.Wrap(feeder.ErrMalformedInput, status.Convert(err).Message())
		}
		return nil, &feeder.IOError{Op: "sort", Path: sortFullMethod, Err: err}
	}
	// The response carries no count, prepend it so Decode can validate the body.
	sorted, err := feeder.Decode(bytes.NewReader(append([]byte(strconv.Itoa(len(s))+" "), out.GetValue()...)))
	if err != nil {
		return nil, err
	}

	return sorted, nil
}

// HostAddrValidator checks that addr is a host:port pair with a resolvable
// host and a valid port. An empty host means all local addresses.
func HostAddrValidator(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.Wrapf(err, "invalid address %s", addr)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return errors.Errorf("invalid port %q in address %s", port, addr)
	}
	if host == "" || net.ParseIP(host) != nil {
		return nil
	}
	if _, err := net.LookupHost(host); err != nil {
		return errors.Wrapf(err, "failed to resolve host %s", host)
	}

	return nil
}
